package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/sdpatel1986/ng-dragon-medical/internal/flagx"
)

// parseEnv overlays Config fields from the environment. If the -env-file
// flag names a .env file it is loaded first; values already present in the
// process environment win over the file, matching godotenv semantics.
//
// Recognized variables:
//
//	DRAGON_ENDPOINT_ADDR     HTTP bind address
//	DRAGON_MONGO_URI         MongoDB connection string
//	DRAGON_DATABASE_NAME     database name
//	DRAGON_PEPPER            password pepper (secret)
//	DRAGON_SIGNING_SECRET    token signing key (secret)
//	DRAGON_TOKEN_ISSUER      issuer claim
//	DRAGON_SESSION_LIFETIME  session lifetime, Go duration syntax (e.g. "1h")
func parseEnv(config *Config) {
	if path := flagx.EnvFilePath(); path != "" {
		// A named file that cannot be read is a configuration mistake.
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	}

	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	setString("DRAGON_ENDPOINT_ADDR", &config.EndpointAddr)
	setString("DRAGON_MONGO_URI", &config.MongoURI)
	setString("DRAGON_DATABASE_NAME", &config.DatabaseName)
	setString("DRAGON_PEPPER", &config.Pepper)
	setString("DRAGON_SIGNING_SECRET", &config.SigningSecret)
	setString("DRAGON_TOKEN_ISSUER", &config.TokenIssuer)

	if v, ok := os.LookupEnv("DRAGON_SESSION_LIFETIME"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.SessionLifetime = d
	}
}

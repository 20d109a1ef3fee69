package config

import (
	"flag"
	"os"
	"time"

	"github.com/sdpatel1986/ng-dragon-medical/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-m string   MongoDB connection string
//	-d string   database name
//	-i string   token issuer
//	-l int      session lifetime, minutes
//
// Secrets deliberately have no flag form; they would end up in shell history
// and process listings. Use the environment or a .env file for those.
//
// Args are first filtered through flagx.FilterArgs so flags owned by other
// layers (like -env-file) do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-d", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "MongoDB connection string")
	fs.StringVar(&config.DatabaseName, "d", config.DatabaseName, "database name")
	fs.StringVar(&config.TokenIssuer, "i", config.TokenIssuer, "token issuer")

	sessionLifetime := fs.Int("l", int(config.SessionLifetime.Minutes()), "session lifetime (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionLifetime = time.Duration(*sessionLifetime) * time.Minute
}

// Command dragonctl is the operator's bootstrap tool: it creates user
// accounts directly in the database, since the server has no self-signup
// surface for operators to rely on during provisioning.
//
// Usage:
//
//	dragonctl -e admin@example.com
//
// The password is read twice from the terminal and never echoed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/sdpatel1986/ng-dragon-medical/internal/docstore"
	"github.com/sdpatel1986/ng-dragon-medical/internal/flagx"
	"github.com/sdpatel1986/ng-dragon-medical/internal/logging"
	"github.com/sdpatel1986/ng-dragon-medical/internal/server/config"
	"github.com/sdpatel1986/ng-dragon-medical/internal/server/credentials"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {
	var email string

	args := flagx.FilterArgs(os.Args[1:], []string{"-e"})
	fs := flag.NewFlagSet("dragonctl", flag.ContinueOnError)
	fs.StringVar(&email, "e", "", "email of the account to create")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if email == "" {
		return fmt.Errorf("email is required (-e)")
	}

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	password, err := readPassword()
	if err != nil {
		return err
	}

	ctx := context.Background()

	db, err := docstore.ConnectMongo(ctx, cfg.MongoURI, cfg.DatabaseName, []docstore.CollectionSpec{
		credentials.Spec(),
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(ctx); err != nil {
			log.Printf("db close error: %v", err)
		}
	}()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	creds := credentials.NewStore(db, cfg.Pepper, logger)
	if err := creds.CreateUser(ctx, email, password); err != nil {
		return err
	}

	fmt.Printf("user %s created\n", email)
	return nil
}

func readPassword() (string, error) {
	fmt.Print("Password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}

	fmt.Print("Repeat password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	if len(first) == 0 {
		return "", fmt.Errorf("password must not be empty")
	}

	return string(first), nil
}

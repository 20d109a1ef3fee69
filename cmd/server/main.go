package main

import (
	"context"
	"log"

	"github.com/sdpatel1986/ng-dragon-medical/internal/server"
	"github.com/sdpatel1986/ng-dragon-medical/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(ctx, cfg, nil)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}

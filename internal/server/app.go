// Package server initializes and runs the auth server: it connects the
// document store, wires the credential and session services, and serves the
// HTTP API with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sdpatel1986/ng-dragon-medical/internal/docstore"
	"github.com/sdpatel1986/ng-dragon-medical/internal/logging"
	"github.com/sdpatel1986/ng-dragon-medical/internal/server/auth"
	"github.com/sdpatel1986/ng-dragon-medical/internal/server/config"
	"github.com/sdpatel1986/ng-dragon-medical/internal/server/credentials"
	"github.com/sdpatel1986/ng-dragon-medical/internal/server/sessions"
	"github.com/sdpatel1986/ng-dragon-medical/internal/server/web"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     docstore.Store
	router *gin.Engine
}

// NewApp connects storage and wires every service. Protected routes from
// collaborating modules can be mounted via protected; nil means only the
// auth routes are served.
func NewApp(ctx context.Context, cfg *config.Config, protected func(*gin.RouterGroup)) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	sessionSpec := sessions.Spec()
	if cfg.SessionLifetime > 0 {
		sessionSpec.TTL = cfg.SessionLifetime
	}

	db, err := docstore.ConnectMongo(ctx, cfg.MongoURI, cfg.DatabaseName, []docstore.CollectionSpec{
		credentials.Spec(),
		sessionSpec,
	})
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	creds := credentials.NewStore(db, cfg.Pepper, logger)
	sess := sessions.NewStore(db)
	tokens := auth.NewService(auth.NewSigner(cfg.SigningSecret), sess, cfg.TokenIssuer, cfg.SessionLifetime)
	gate := auth.NewGate(tokens)

	handler := web.NewHandler(creds, tokens, logger)
	router := web.NewRouter(handler, gate, logger, protected)

	return &App{config: cfg, logger: logger, db: db, router: router}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "listening", "addr", app.config.EndpointAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(context.Background()); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}

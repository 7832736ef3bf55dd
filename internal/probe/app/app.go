package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/amxprobe/internal/probe/http"
	"github.com/aussiebroadwan/amxprobe/internal/probe/service"
	"github.com/aussiebroadwan/amxprobe/internal/probe/store"
	"github.com/aussiebroadwan/amxprobe/internal/probe/store/drivers/sqlite"
	"github.com/aussiebroadwan/amxprobe/pkg/approvalsdk"
	"github.com/aussiebroadwan/amxprobe/pkg/slogx"
	"golang.org/x/time/rate"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application encapsulates the probe service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	client *approvalsdk.SDKClient

	// Services
	tokens              *service.TokenStore
	history             *service.CallbackHistory
	journal             *service.JournalService
	api                 *service.APIClient
	authService         *service.AuthService
	prober              *service.Prober
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "amxprobe",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the fully wired router.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("probe service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"redirect_uri", app.cfg.RedirectURI,
		"api_base_url", app.client.BaseURL,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			app.housekeepingService.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down probe service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("probe service stopped")
	return nil
}

// initDatabase opens the activity journal and applies migrations
func (app *Application) initDatabase() error {
	dsn := app.cfg.DatabaseFile
	if dsn != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	}

	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initServices initializes the OAuth session and probing services
func (app *Application) initServices() {
	app.client = approvalsdk.NewSDKClient(app.cfg.SDKConfig())

	app.tokens = service.NewTokenStore()
	app.history = service.NewCallbackHistory(service.DefaultCallbackCapacity)
	app.journal = &service.JournalService{Store: app.db}

	app.api = &service.APIClient{
		Client:      app.client,
		Tokens:      app.tokens,
		Journal:     app.journal,
		AutoRefresh: app.cfg.AutoRefresh,
	}

	app.authService = &service.AuthService{
		Client:      app.client,
		Tokens:      app.tokens,
		History:     app.history,
		Journal:     app.journal,
		API:         app.api,
		StrictState: app.cfg.StrictState,
		SmokeTest:   app.cfg.CallbackSmokeTest,
	}

	app.prober = &service.Prober{
		API:         app.api,
		Journal:     app.journal,
		Concurrency: app.cfg.ProbeConcurrency,
	}
	if app.cfg.ProbeRatePerSecond > 0 {
		burst := max(1, int(app.cfg.ProbeRatePerSecond))
		app.prober.Limiter = rate.NewLimiter(rate.Limit(app.cfg.ProbeRatePerSecond), burst)
		app.logger.Info("outbound probe pacing enabled", "rate_per_second", app.cfg.ProbeRatePerSecond)
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.journal,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.JournalRetention,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	authURL, tokenURL := app.client.Endpoints()

	router := httpapi.NewRouter(
		httpapi.Settings{
			ClientID:              app.cfg.ClientID,
			RedirectURI:           app.cfg.RedirectURI,
			AuthURL:               authURL,
			TokenURL:              tokenURL,
			APIBaseURL:            app.client.BaseURL,
			Scopes:                app.client.Scopes(),
			TrustForwardedHeaders: app.cfg.TrustForwardedHeaders,
			AutoRefresh:           app.cfg.AutoRefresh,
			StrictState:           app.cfg.StrictState,
			CallbackSmokeTest:     app.cfg.CallbackSmokeTest,
			ProbeConcurrency:      app.cfg.ProbeConcurrency,
			ProbeRatePerSecond:    app.cfg.ProbeRatePerSecond,
		},
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.API = app.api
	router.Prober = app.prober
	router.Tokens = app.tokens
	router.History = app.history
	router.Journal = app.journal
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

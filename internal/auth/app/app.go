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

	httpapi "github.com/ailab/authd/internal/auth/http"
	"github.com/ailab/authd/internal/auth/service"
	"github.com/ailab/authd/internal/auth/session"
	"github.com/ailab/authd/internal/auth/store"
	"github.com/ailab/authd/internal/auth/store/drivers/sqlite"
	"github.com/ailab/authd/pkg/cryptox"
	"github.com/ailab/authd/pkg/jwtx"
	"github.com/ailab/authd/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	sessions session.Store
	signer   jwtx.Signer
	verifier jwtx.Verifier

	// Services
	sessionService *service.SessionService
	userService    *service.UserService

	// HTTP server
	server *http.Server
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "authd",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	signer, err := jwtx.NewSignerHS256([]byte(cfg.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256([]byte(cfg.SecretKey), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize verifier: %w", err)
	}
	app.signer = signer
	app.verifier = verifier

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSessionStore(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.sessions.Close()
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Close the session store connection
	if err := app.sessions.Close(); err != nil {
		app.logger.Error("error closing session store", "error", err)
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initSessionStore initializes the refresh-token slot store
func (app *Application) initSessionStore() error {
	switch app.cfg.SessionBackend {
	case "memory":
		app.sessions = session.NewMemoryStore()
		app.logger.Warn("using in-memory session store; sessions do not survive restarts")
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s, err := session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     app.cfg.RedisAddr,
			Password: app.cfg.RedisPassword,
			DB:       app.cfg.RedisDB,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.sessions = s
	}
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	// No field key means PII fields are stored in the clear; the nil
	// cipher passes values through untouched.
	var cipher *cryptox.FieldCipher
	if app.cfg.FieldKey != "" {
		c, err := cryptox.NewFieldCipher(app.cfg.FieldKey)
		if err != nil {
			return fmt.Errorf("failed to initialize field cipher: %w", err)
		}
		cipher = c
	}

	app.sessionService = &service.SessionService{
		Users:        app.db.Users(),
		Sessions:     app.sessions,
		Signer:       app.signer,
		Verifier:     app.verifier,
		Issuer:       app.cfg.Issuer,
		AccessTTL:    app.cfg.AccessTokenTTL,
		RefreshTTL:   app.cfg.RefreshTokenTTL,
		StoreTimeout: app.cfg.StoreTimeout,
	}

	app.userService = &service.UserService{
		Users:  app.db.Users(),
		Cipher: cipher,
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := &httpapi.Router{
		Sessions:    app.sessionService,
		Users:       app.userService,
		Verifier:    app.verifier,
		TokenHeader: app.cfg.TokenHeader,
		Cookies: httpapi.CookieConfig{
			Name:   app.cfg.CookieName,
			Path:   app.cfg.CookiePath,
			Domain: app.cfg.CookieDomain,
			Secure: app.cfg.CookieSecure,
			MaxAge: app.cfg.RefreshTokenTTL,
		},
		DB:           app.db,
		SessionStore: app.sessions,
		Logger:       app.logger,
	}

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router.Handler(),
		ReadHeaderTimeout: 3 * time.Second,
	}
}

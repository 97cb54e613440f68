// Package server wires the CivicHub backend: it opens Postgres, applies the
// embedded migrations, and runs the REST API and the gRPC health endpoint
// under one context until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/civichub/internal/logging"
	"github.com/dmitrijs2005/civichub/internal/repositories/repomanager"
	"github.com/dmitrijs2005/civichub/internal/server/config"
	"github.com/dmitrijs2005/civichub/internal/server/httpapi"
	"github.com/dmitrijs2005/civichub/internal/server/services"

	gs "github.com/dmitrijs2005/civichub/internal/server/grpc"
)

const (
	shutdownTimeout     = 5 * time.Second
	healthCheckInterval = 5 * time.Second
)

// App is the backend process: configuration, the shared database handle and
// the HTTP API built on top of it. The gRPC health server is created in Run.
type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	api    *httpapi.Server
}

// openDB is a seam for tests.
var openDB = repomanager.Open

// NewApp validates the configuration, opens the database and applies the
// embedded migrations before wiring the services.
//
// Returns an error (wrapping the cause) when the config is invalid, the
// database cannot be opened, or a migration fails. The database is closed on
// a migration failure.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	return newApp(c, logger, db, rm), nil
}

// newApp wires services into the HTTP API over an already opened database.
// Tests use it to build an App around sqlmock.
func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) *App {
	profiles := services.NewProfileService(db, rm)

	api := httpapi.NewServer(httpapi.Deps{
		Accounts:   services.NewAuthService(db, rm, c),
		Profiles:   profiles,
		Complaints: services.NewComplaintService(db, rm),
		Notices:    services.NewNoticeService(db, rm),
		Visitors:   services.NewVisitorService(db, rm),
		Payments:   services.NewPaymentService(db, rm),
		Avatars:    services.NewAvatarService(c, profiles),
		DB:         db,
	}, c.CorsOrigins, logger)

	return &App{config: c, logger: logger, db: db, api: api}
}

// initSignalHandler cancels the app context on SIGINT, SIGTERM or SIGQUIT.
func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// startHTTPServer serves the REST API until ctx is done, then shuts the
// server down within shutdownTimeout. A listen failure cancels the whole app.
func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	srv := &http.Server{
		Addr:              app.config.HTTPAddr,
		Handler:           app.api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// startGRPCServer runs the health endpoint. A listen failure cancels the
// whole app.
func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.db, healthCheckInterval)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives, or either server
// fails to start. The database is closed on return.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close failed", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}

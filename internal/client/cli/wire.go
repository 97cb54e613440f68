package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/civichub/internal/client/config"
	"github.com/dmitrijs2005/civichub/internal/client/gateway"
	"github.com/dmitrijs2005/civichub/internal/client/health"
	"github.com/dmitrijs2005/civichub/internal/client/localdb"
	"github.com/dmitrijs2005/civichub/internal/client/services"
	"github.com/dmitrijs2005/civichub/internal/client/state"
	"github.com/dmitrijs2005/civichub/internal/logging"
	"github.com/dmitrijs2005/civichub/internal/repositories/repomanager"
)

// Build opens local storage, connects the configured gateway binding and
// assembles an App. The returned cleanup drains pending writes and releases
// every resource.
func Build(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	local, err := localdb.InitDatabase(ctx, cfg.LocalDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("local database: %w", err)
	}

	gw, prober, closeProber, err := buildGateway(ctx, cfg, log)
	if err != nil {
		_ = local.Close()
		return nil, nil, err
	}

	store := state.NewStore()
	bg := services.NewBackground(log)

	app := NewApp(cfg, Deps{Store: store, Prober: prober, Logger: log})
	alerter := services.AlertFunc(func(msg string) { app.printf("! %s\n", msg) })

	app.auth = services.NewAuthService(gw, store, services.NewTokenStore(local.Metadata), alerter, log)
	app.data = services.NewDataService(gw, store, log, nil)
	app.mutations = services.NewMutationService(gw, store, bg, alerter, log, services.MutationOptions{
		SendResolvedAt: cfg.SendResolvedAt,
	})
	app.profile = services.NewProfileService(gw, store, nil, log)

	cleanup := func() {
		bg.Wait()
		errs := []error{gw.Close(), local.Close()}
		if closeProber != nil {
			errs = append(errs, closeProber())
		}
		if err := errors.Join(errs...); err != nil {
			log.Warn(context.Background(), "cleanup failed", "error", err)
		}
	}
	return app, cleanup, nil
}

// buildGateway connects the configured binding and returns the gateway, the
// connectivity prober and an optional extra cleanup.
func buildGateway(ctx context.Context, cfg *config.Config, log logging.Logger) (gateway.Gateway, Prober, func() error, error) {
	switch cfg.Binding {
	case config.BindingPostgres:
		db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		gw := gateway.NewPostgresGateway(db, repomanager.NewPostgresRepositoryManager(), gateway.PostgresOptions{
			SigningKey: []byte(cfg.SigningKey),
		})
		return gw, ProbeFunc(gw.Ping), nil, nil

	default:
		gw := gateway.NewRESTGateway(cfg.BackendURL, gateway.RESTOptions{
			Timeout: cfg.RequestTimeout,
			Logger:  log,
		})
		checker, err := health.NewChecker(cfg.HealthAddr)
		if err != nil {
			log.Warn(ctx, "gRPC health checker unavailable, probing over HTTP", "error", err)
			return gw, ProbeFunc(gw.Ping), nil, nil
		}
		return gw, checker, checker.Close, nil
	}
}

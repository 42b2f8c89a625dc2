package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/fretwise"
	"github.com/aretw0/fretwise/internal/config"
	"github.com/aretw0/fretwise/internal/logging"
	"github.com/aretw0/fretwise/pkg/adapters/loam"
	"github.com/aretw0/fretwise/pkg/adapters/memory"
	"github.com/aretw0/fretwise/pkg/adapters/redis"
	"github.com/aretw0/fretwise/pkg/adapters/sqlite"
	"github.com/aretw0/fretwise/pkg/observability"
	"github.com/aretw0/fretwise/pkg/ports"
	"github.com/aretw0/fretwise/pkg/seed"
)

// App is a fully wired fretwise process: a backend, the engine on top of it
// and the collaborators the commands share.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Engine  *fretwise.Engine
	Library ports.Library
	Locker  ports.DistributedLocker
	Metrics *observability.Metrics

	recorder ports.TransitionRecorder
	closers  []func() error
}

// BuildOptions tweak how an App is assembled.
type BuildOptions struct {
	// Logger overrides the logger derived from the configuration.
	Logger *slog.Logger
	// Metrics enables the Prometheus collectors and engine hooks.
	Metrics bool
	// SkipSeed disables the seed_on_start behaviour.
	SkipSeed bool
}

// NewLogger builds the application logger from the log section.
func NewLogger(cfg config.LogConfig) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return logging.NewFormat(os.Stderr, cfg.Format, level), nil
}

// Build opens the configured backend and creates the engine.
// The caller must Close the returned App.
func Build(ctx context.Context, cfg *config.Config, opts BuildOptions) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		var err error
		if logger, err = NewLogger(cfg.Log); err != nil {
			return nil, err
		}
	}

	app := &App{Config: cfg, Logger: logger}
	if err := app.openBackend(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}

	hooks := observability.LoggingHooks(logger)
	if opts.Metrics {
		app.Metrics = observability.NewMetrics()
		hooks = hooks.Merge(app.Metrics.Hooks())
	}

	engineOpts := []fretwise.Option{
		fretwise.WithLogger(logger),
		fretwise.WithWeights(cfg.Scoring.FingeringWeight, cfg.Scoring.HandPositionWeight),
		fretwise.WithHooks(hooks),
	}
	if app.recorder != nil {
		engineOpts = append(engineOpts, fretwise.WithRecorder(app.recorder))
	}

	engine, err := fretwise.New(app.Library, engineOpts...)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	app.Engine = engine

	if cfg.Seed.OnStart && !opts.SkipSeed && app.seedable() {
		if _, err := app.Seed(ctx, cfg.Seed.Path); err != nil {
			_ = app.Close()
			return nil, err
		}
	}
	return app, nil
}

func (a *App) openBackend(ctx context.Context) error {
	cfg := a.Config
	switch cfg.Backend {
	case config.BackendMemory:
		a.Library = memory.NewLibrary()

	case config.BackendRedis:
		client := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		a.closers = append(a.closers, client.Close)

		lib := redis.NewFromClient(client, redis.WithPrefix(cfg.Redis.Prefix))
		if err := lib.Ping(ctx); err != nil {
			return fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		a.Library = lib
		a.recorder = redis.NewRecorder(client, redis.WithPrefix(cfg.Redis.Prefix), redis.WithTTL(cfg.Redis.TTL))
		a.Locker = redis.NewLocker(client, cfg.Redis.Prefix)

	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, store.Close)
		a.Library = store
		a.recorder = store

	case config.BackendLoam:
		lib, err := loam.Open(cfg.Loam.Path, cfg.Loam.ReadOnly)
		if err != nil {
			return err
		}
		a.Library = lib

	default:
		return fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	a.Logger.Debug("backend ready", "backend", cfg.Backend)
	return nil
}

// seedable reports whether seeding on start makes sense for the backend.
// A memory library always starts empty; a read-only document library cannot be written.
func (a *App) seedable() bool {
	switch a.Config.Backend {
	case config.BackendLoam:
		return !a.Config.Loam.ReadOnly
	default:
		return true
	}
}

// Seed loads path (or the embedded sample when path is empty) into the backend.
func (a *App) Seed(ctx context.Context, path string) (int, error) {
	opts := []seed.Option{
		seed.WithBatchSize(a.Config.Seed.BatchSize),
		seed.WithLogger(a.Logger),
	}
	if a.Locker != nil {
		key := path
		if key == "" {
			key = "sample"
		}
		opts = append(opts, seed.WithLocker(a.Locker, "seed:"+key, a.Config.Seed.LockTTL))
	}
	seeder := seed.NewSeeder(a.Library, opts...)

	var (
		n   int
		err error
	)
	if path == "" {
		n, err = seeder.Seed(ctx, seed.Sample())
	} else {
		n, err = seeder.SeedFile(ctx, path)
	}
	if err != nil {
		return n, fmt.Errorf("seeding failed after %d variations: %w", n, err)
	}
	a.Logger.Info("seeded library", "variations", n, "source", sourceName(path))
	return n, nil
}

func sourceName(path string) string {
	if path == "" {
		return "sample"
	}
	return path
}

// Close releases the backend connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

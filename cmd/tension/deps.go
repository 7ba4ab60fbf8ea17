package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ersonp/tension-core/internal/application/handlers"
	"github.com/ersonp/tension-core/internal/domain/ports"
	"github.com/ersonp/tension-core/internal/domain/services"
	"github.com/ersonp/tension-core/internal/infrastructure/config"
	"github.com/ersonp/tension-core/internal/infrastructure/graphstore/jsonl"
	"github.com/ersonp/tension-core/internal/infrastructure/graphstore/sqlite"
	"github.com/ersonp/tension-core/internal/infrastructure/logger"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed; services and the store are internal.
type Deps struct {
	Config    *config.Config
	Chart     *handlers.ChartHandler
	Query     *handlers.QueryHandler
	Graph     *handlers.GraphHandler
	Narrative *handlers.NarrativeHandler
}

// withDeps loads config, opens the store at the CLI log level and builds the
// handlers, then calls fn. The store is closed afterwards.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	return withStore(ctx, zapcore.WarnLevel, func(cfg *config.Config, store ports.GraphStore) error {
		log := logger.Get()
		graph := services.NewGraphService(store, log)
		charts := services.NewChartService(graph, services.NewValidationService(), log)

		return fn(&Deps{
			Config:    cfg,
			Chart:     handlers.NewChartHandler(charts),
			Query:     handlers.NewQueryHandler(services.NewQueryService(graph)),
			Graph:     handlers.NewGraphHandler(graph),
			Narrative: handlers.NewNarrativeHandler(services.NewNarrativeService(graph, log)),
		})
	})
}

// withStore resolves configuration, initializes the logger at level and
// opens the configured GraphStore for the duration of fn.
func withStore(ctx context.Context, level zapcore.Level, fn func(*config.Config, ports.GraphStore) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Log.Env, level); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			logger.Get().Warn("closing store", zap.Error(cerr))
		}
	}()

	return fn(cfg, store)
}

// loadConfig loads the config for the working directory and applies the
// global flags, which take precedence over the environment.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if globalEnvFile != "" {
		if err := cfg.LoadEnvFile(globalEnvFile); err != nil {
			return nil, err
		}
	}
	if globalMemoryPath != "" {
		abs, err := filepath.Abs(globalMemoryPath)
		if err != nil {
			return nil, fmt.Errorf("resolving memory path: %w", err)
		}
		cfg.Store.MemoryPath = abs
	}
	if globalCurrentChart != "" {
		cfg.CurrentChart = globalCurrentChart
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openStore opens the configured backend and returns it with its closer.
func openStore(ctx context.Context, cfg *config.Config) (ports.GraphStore, func() error, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		if cfg.Store.SQLitePath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.Store.SQLitePath), 0755); err != nil {
				return nil, nil, fmt.Errorf("creating sqlite directory: %w", err)
			}
		}
		store, err := sqlite.NewStore(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("creating sqlite store: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("ensuring sqlite schema: %w", err)
		}
		return store, store.Close, nil
	default:
		return jsonl.NewStore(cfg.Store.MemoryPath), func() error { return nil }, nil
	}
}

// chartID returns explicit when given, else the configured current chart.
func (d *Deps) chartID(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if d.Config.CurrentChart != "" {
		return d.Config.CurrentChart, nil
	}
	return "", errors.New("chart id is required (pass it or set --current-chart)")
}

// optionalArg returns args[i] or "".
func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

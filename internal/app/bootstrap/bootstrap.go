package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	faucetservice "rgbfaucet/contexts/asset-distribution/faucet-service"
	"rgbfaucet/contexts/asset-distribution/faucet-service/adapters/memory"
	postgresadapter "rgbfaucet/contexts/asset-distribution/faucet-service/adapters/postgres"
	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
	"rgbfaucet/internal/platform/config"
	"rgbfaucet/internal/platform/db"
	"rgbfaucet/internal/platform/httpserver"
	"rgbfaucet/internal/platform/metrics"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

// APIApp is the faucet runtime: HTTP surface plus the batch scheduler in
// one process. The wallet holds transfer state in memory, so the scheduler
// must run exactly where submissions land; a second scheduler process would
// send against its own wallet and double-serve requests.
type APIApp struct {
	server   *httpserver.Server
	faucet   faucetservice.Module
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	module, pg, err := buildModule(cfg, logger)
	if err != nil {
		return nil, err
	}

	server := httpserver.New(module, cfg.UserAPIKey, cfg.OperatorAPIKey, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		faucet:   module,
		postgres: pg,
		logger:   logger,
	}, nil
}

// buildModule assembles the faucet on the postgres request store and the
// in-process wallet, seeded with one asset per configured group.
func buildModule(cfg config.Config, logger *slog.Logger) (faucetservice.Module, *db.Postgres, error) {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return faucetservice.Module{}, nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.UserAPIKey) == "" || strings.TrimSpace(cfg.OperatorAPIKey) == "" {
		return faucetservice.Module{}, nil, errors.New("API_KEY and API_KEY_OPERATOR are required")
	}

	groups, err := config.LoadGroups(cfg.GroupsFile)
	if err != nil {
		return faucetservice.Module{}, nil, err
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return faucetservice.Module{}, nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	if err := repo.Migrate(); err != nil {
		_ = pg.Close()
		return faucetservice.Module{}, nil, err
	}

	module := faucetservice.NewModule(faucetservice.Dependencies{
		Repository:         repo,
		Wallet:             memory.NewWallet(seedAssets(groups)),
		Groups:             memory.NewGroups(groups),
		Clock:              postgresadapter.SystemClock{},
		BatchLimit:         cfg.BatchLimit,
		TransportEndpoints: cfg.TransportEndpoints,
		CycleInterval:      cfg.CycleInterval,
		Logger:             logger,
	})
	module.Scheduler.OnCycle = func(sent int, _ bool, elapsed time.Duration) {
		metrics.CycleDuration.Observe(elapsed.Seconds())
		if sent > 0 {
			metrics.BatchesSent.Inc()
			metrics.RequestsSent.Add(float64(sent))
		}
	}
	return module, pg, nil
}

// seedAssets derives the wallet's asset set from group configuration so
// every configured group is spendable at startup.
func seedAssets(groups map[string]entities.AssetGroup) []entities.AssetInfo {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	seen := make(map[string]bool, len(groups))
	assets := make([]entities.AssetInfo, 0, len(groups))
	for _, name := range names {
		group := groups[name]
		if seen[group.AssetID] {
			continue
		}
		seen[group.AssetID] = true
		assets = append(assets, entities.AssetInfo{
			AssetID:   group.AssetID,
			Name:      name,
			Precision: 0,
			Balance:   1_000_000,
		})
	}
	return assets
}

// Run starts the scheduler alongside the HTTP server. The wallet lives in
// this process, so batching must happen where submissions land.
func (a *APIApp) Run(ctx context.Context) error {
	a.faucet.Scheduler.Start(ctx)
	metrics.SchedulerPaused.Set(0)

	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	a.faucet.Scheduler.Stop()
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}

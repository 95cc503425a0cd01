package faucetservice

import (
	"log/slog"
	"time"

	httpadapter "rgbfaucet/contexts/asset-distribution/faucet-service/adapters/http"
	"rgbfaucet/contexts/asset-distribution/faucet-service/adapters/memory"
	"rgbfaucet/contexts/asset-distribution/faucet-service/application/commands"
	"rgbfaucet/contexts/asset-distribution/faucet-service/application/queries"
	"rgbfaucet/contexts/asset-distribution/faucet-service/application/workers"
	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
	"rgbfaucet/contexts/asset-distribution/faucet-service/ports"
)

type Module struct {
	Handler   httpadapter.Handler
	Scheduler *workers.BatchScheduler
	Store     *memory.Store
	Wallet    *memory.Wallet
}

type Dependencies struct {
	Repository         ports.RequestRepository
	Wallet             ports.Wallet
	Groups             ports.GroupConfig
	Clock              ports.Clock
	BatchLimit         int
	TransportEndpoints []string
	CycleInterval      time.Duration
	Logger             *slog.Logger
}

func NewModule(deps Dependencies) Module {
	commandUseCase := commands.UseCase{
		Repository:         deps.Repository,
		Wallet:             deps.Wallet,
		Groups:             deps.Groups,
		Clock:              deps.Clock,
		BatchLimit:         deps.BatchLimit,
		TransportEndpoints: deps.TransportEndpoints,
		Logger:             deps.Logger,
	}
	queryUseCase := queries.UseCase{
		Repository: deps.Repository,
		Wallet:     deps.Wallet,
		Groups:     deps.Groups,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Commands: commandUseCase,
			Queries:  queryUseCase,
			Logger:   deps.Logger,
		},
		Scheduler: workers.NewBatchScheduler(commandUseCase, deps.CycleInterval, deps.Logger),
	}
}

// NewInMemoryModule wires the module on the in-memory store and wallet for
// local runtime and tests.
func NewInMemoryModule(
	groups map[string]entities.AssetGroup,
	assets []entities.AssetInfo,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(logger)
	wallet := memory.NewWallet(assets)
	module := NewModule(Dependencies{
		Repository: store,
		Wallet:     wallet,
		Groups:     memory.NewGroups(groups),
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	module.Wallet = wallet
	return module
}

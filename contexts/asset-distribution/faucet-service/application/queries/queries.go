package queries

import (
	"context"
	"log/slog"
	"strings"

	application "rgbfaucet/contexts/asset-distribution/faucet-service/application"
	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
	domainerrors "rgbfaucet/contexts/asset-distribution/faucet-service/domain/errors"
	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/services"
	"rgbfaucet/contexts/asset-distribution/faucet-service/ports"
)

// UseCase carries the read-side dependencies: operational visibility over
// requests and wallet transfers, and per-wallet quota lookups.
type UseCase struct {
	Repository ports.RequestRepository
	Wallet     ports.Wallet
	Groups     ports.GroupConfig
	Logger     *slog.Logger
}

// ListRequests applies exact-match conjunctive filters. With no filter at
// all, it defaults to pending requests; any explicit filter disables the
// default so operators can inspect terminal requests too.
func (uc UseCase) ListRequests(ctx context.Context, filter ports.RequestFilter) ([]entities.DistributionRequest, error) {
	logger := application.ResolveLogger(uc.Logger)
	if filter.Empty() {
		filter.Status = entities.RequestStatusPending
	}
	requests, err := uc.Repository.List(ctx, filter)
	if err != nil {
		logger.Warn("faucet query list requests failed",
			"event", "faucet_query_list_requests_failed",
			"module", "asset-distribution/faucet-service",
			"layer", "application",
			"error", err.Error(),
		)
		return nil, err
	}
	return requests, nil
}

// RemainingQuota returns, per asset group, how many requests the wallet can
// still submit. Failed requests do not consume quota.
func (uc UseCase) RemainingQuota(ctx context.Context, walletID string) (map[string]int, error) {
	logger := application.ResolveLogger(uc.Logger)
	walletID = strings.TrimSpace(walletID)
	if !services.ValidWalletID(walletID) {
		return nil, domainerrors.ErrInvalidWalletID
	}

	remaining := make(map[string]int)
	for _, name := range uc.Groups.GroupNames() {
		group, ok := uc.Groups.Group(name)
		if !ok {
			continue
		}
		consumed, err := uc.Repository.CountByWalletAndGroup(ctx, walletID, name,
			[]entities.RequestStatus{entities.RequestStatusFailed})
		if err != nil {
			logger.Warn("faucet query remaining quota failed",
				"event", "faucet_query_remaining_quota_failed",
				"module", "asset-distribution/faucet-service",
				"layer", "application",
				"wallet_id", walletID,
				"asset_group", name,
				"error", err.Error(),
			)
			return nil, err
		}
		remaining[name] = services.RemainingQuota(group.RequestsPerWallet, consumed)
	}
	return remaining, nil
}

// ListTransfers surfaces wallet-side transfer state. With no status filter it
// returns in-flight transfers only (awaiting counterparty or confirmations).
func (uc UseCase) ListTransfers(ctx context.Context, status entities.TransferStatus) ([]entities.TransferView, error) {
	logger := application.ResolveLogger(uc.Logger)
	assets, err := uc.Wallet.ListAssets(ctx)
	if err != nil {
		logger.Warn("faucet query list transfers failed listing assets",
			"event", "faucet_query_list_transfers_assets_failed",
			"module", "asset-distribution/faucet-service",
			"layer", "application",
			"error", err.Error(),
		)
		return nil, err
	}

	var matched []entities.TransferView
	for _, asset := range assets {
		transfers, err := uc.Wallet.ListTransfers(ctx, asset.AssetID)
		if err != nil {
			return nil, err
		}
		for _, transfer := range transfers {
			if status == "" {
				if transfer.Status.Pending() {
					matched = append(matched, transfer)
				}
				continue
			}
			if transfer.Status == status {
				matched = append(matched, transfer)
			}
		}
	}
	return matched, nil
}

// AssetOverview lists the assets held by the faucet wallet with balances.
func (uc UseCase) AssetOverview(ctx context.Context) ([]entities.AssetInfo, error) {
	assets, err := uc.Wallet.ListAssets(ctx)
	if err != nil {
		application.ResolveLogger(uc.Logger).Warn("faucet query asset overview failed",
			"event", "faucet_query_asset_overview_failed",
			"module", "asset-distribution/faucet-service",
			"layer", "application",
			"error", err.Error(),
		)
		return nil, err
	}
	return assets, nil
}

// ListUnspents surfaces the wallet's UTXO set with asset allocations.
func (uc UseCase) ListUnspents(ctx context.Context) ([]entities.Unspent, error) {
	unspents, err := uc.Wallet.ListUnspents(ctx)
	if err != nil {
		application.ResolveLogger(uc.Logger).Warn("faucet query list unspents failed",
			"event", "faucet_query_list_unspents_failed",
			"module", "asset-distribution/faucet-service",
			"layer", "application",
			"error", err.Error(),
		)
		return nil, err
	}
	return unspents, nil
}

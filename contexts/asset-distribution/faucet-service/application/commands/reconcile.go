package commands

import (
	"context"

	application "rgbfaucet/contexts/asset-distribution/faucet-service/application"
	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
	"rgbfaucet/contexts/asset-distribution/faucet-service/ports"
)

// Reconcile runs the opportunistic per-cycle reconciliation: every asset
// with outstanding sent requests gets a refresh pass, then expired transfers
// are failed. A refresh failure on one asset does not stop the others; the
// scheduler loop is the isolation boundary for collaborator errors.
func (uc UseCase) Reconcile(ctx context.Context) (bool, error) {
	logger := application.ResolveLogger(uc.Logger)

	sentRequests, err := uc.Repository.List(ctx, ports.RequestFilter{
		Status: entities.RequestStatusSent,
	})
	if err != nil {
		return false, err
	}

	assets := make(map[string]struct{})
	var assetOrder []string
	for _, request := range sentRequests {
		if _, seen := assets[request.AssetID]; !seen {
			assets[request.AssetID] = struct{}{}
			assetOrder = append(assetOrder, request.AssetID)
		}
	}

	changed := false
	for _, assetID := range assetOrder {
		assetChanged, err := uc.RefreshAsset(ctx, assetID)
		if err != nil {
			logger.Warn("faucet reconcile refresh failed",
				"event", "faucet_reconcile_refresh_failed",
				"module", "asset-distribution/faucet-service",
				"layer", "application",
				"asset_id", assetID,
				"error", err.Error(),
			)
			continue
		}
		changed = changed || assetChanged
	}

	expiredChanged, err := uc.FailExpired(ctx)
	if err != nil {
		logger.Warn("faucet reconcile expiry sweep failed",
			"event", "faucet_reconcile_expiry_failed",
			"module", "asset-distribution/faucet-service",
			"layer", "application",
			"error", err.Error(),
		)
		return changed, err
	}
	return changed || expiredChanged, nil
}

package commands

import (
	"context"
	"strings"

	application "rgbfaucet/contexts/asset-distribution/faucet-service/application"
	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
	domainerrors "rgbfaucet/contexts/asset-distribution/faucet-service/domain/errors"
	"rgbfaucet/contexts/asset-distribution/faucet-service/ports"
)

// RefreshAsset asks the wallet to refresh transfer state for one asset, then
// promotes every sent request whose transfer has settled to served. Returns
// whether any request changed state; calling again with no new confirmations
// is a no-op returning false.
func (uc UseCase) RefreshAsset(ctx context.Context, assetID string) (bool, error) {
	logger := application.ResolveLogger(uc.Logger)
	assetID = strings.TrimSpace(assetID)
	if !uc.knownAsset(assetID) {
		return false, domainerrors.ErrUnknownAsset
	}

	if err := uc.Wallet.Refresh(ctx, assetID); err != nil {
		logger.Error("faucet refresh failed",
			"event", "faucet_refresh_failed",
			"module", "asset-distribution/faucet-service",
			"layer", "application",
			"asset_id", assetID,
			"error", err.Error(),
		)
		return false, err
	}

	transfers, err := uc.Wallet.ListTransfers(ctx, assetID)
	if err != nil {
		return false, err
	}
	settled := make(map[transferKey]struct{}, len(transfers))
	for _, transfer := range transfers {
		if transfer.Kind == entities.TransferKindSend && transfer.Status == entities.TransferStatusSettled {
			settled[transferKey{transfer.TxID, transfer.RecipientID}] = struct{}{}
		}
	}

	sentRequests, err := uc.Repository.List(ctx, ports.RequestFilter{
		Status:  entities.RequestStatusSent,
		AssetID: assetID,
	})
	if err != nil {
		return false, err
	}

	var served []int64
	for _, request := range sentRequests {
		// A request with no transfer view yet is the wallet catching up;
		// leave it alone rather than erroring.
		if _, ok := settled[transferKey{request.TxID, request.RecipientID}]; ok {
			served = append(served, request.ID)
		}
	}
	if len(served) == 0 {
		return false, nil
	}

	if err := uc.Repository.UpdateStatus(ctx, served, entities.RequestStatusServed); err != nil {
		return false, err
	}
	logger.Info("faucet requests served",
		"event", "faucet_requests_served",
		"module", "asset-distribution/faucet-service",
		"layer", "application",
		"asset_id", assetID,
		"served", len(served),
	)
	return true, nil
}

func (uc UseCase) knownAsset(assetID string) bool {
	if assetID == "" {
		return false
	}
	for _, name := range uc.Groups.GroupNames() {
		if group, ok := uc.Groups.Group(name); ok && group.AssetID == assetID {
			return true
		}
	}
	return false
}

package commands

import (
	"context"

	application "rgbfaucet/contexts/asset-distribution/faucet-service/application"
	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
	"rgbfaucet/contexts/asset-distribution/faucet-service/ports"
)

// FailExpired instructs the wallet to fail transfers stuck awaiting
// counterparty action past their deadline, then moves every sent request
// referencing a failed transfer to failed. Failed requests stop counting
// against quota, so the user can retry. Idempotent; returns whether anything
// changed on either side.
func (uc UseCase) FailExpired(ctx context.Context) (bool, error) {
	logger := application.ResolveLogger(uc.Logger)

	walletChanged, err := uc.Wallet.FailExpiredTransfers(ctx)
	if err != nil {
		logger.Error("faucet fail expired transfers failed",
			"event", "faucet_fail_expired_failed",
			"module", "asset-distribution/faucet-service",
			"layer", "application",
			"error", err.Error(),
		)
		return false, err
	}

	sentRequests, err := uc.Repository.List(ctx, ports.RequestFilter{
		Status: entities.RequestStatusSent,
	})
	if err != nil {
		return walletChanged, err
	}
	if len(sentRequests) == 0 {
		return walletChanged, nil
	}

	failedByAsset := make(map[string]map[transferKey]struct{})
	for _, request := range sentRequests {
		if _, done := failedByAsset[request.AssetID]; done {
			continue
		}
		transfers, err := uc.Wallet.ListTransfers(ctx, request.AssetID)
		if err != nil {
			return walletChanged, err
		}
		failed := make(map[transferKey]struct{})
		for _, transfer := range transfers {
			if transfer.Status == entities.TransferStatusFailed {
				failed[transferKey{transfer.TxID, transfer.RecipientID}] = struct{}{}
			}
		}
		failedByAsset[request.AssetID] = failed
	}

	var failedIDs []int64
	for _, request := range sentRequests {
		if _, ok := failedByAsset[request.AssetID][transferKey{request.TxID, request.RecipientID}]; ok {
			failedIDs = append(failedIDs, request.ID)
		}
	}
	if len(failedIDs) == 0 {
		return walletChanged, nil
	}

	if err := uc.Repository.UpdateStatus(ctx, failedIDs, entities.RequestStatusFailed); err != nil {
		return walletChanged, err
	}
	logger.Info("faucet requests failed on expired transfers",
		"event", "faucet_requests_failed",
		"module", "asset-distribution/faucet-service",
		"layer", "application",
		"failed", len(failedIDs),
	)
	return true, nil
}

// DeleteFailed removes wallet-side failed transfers. Request rows are
// untouched; their failed status is already final.
func (uc UseCase) DeleteFailed(ctx context.Context) (bool, error) {
	logger := application.ResolveLogger(uc.Logger)
	changed, err := uc.Wallet.DeleteFailedTransfers(ctx)
	if err != nil {
		logger.Error("faucet delete failed transfers failed",
			"event", "faucet_delete_failed_transfers_failed",
			"module", "asset-distribution/faucet-service",
			"layer", "application",
			"error", err.Error(),
		)
		return false, err
	}
	return changed, nil
}

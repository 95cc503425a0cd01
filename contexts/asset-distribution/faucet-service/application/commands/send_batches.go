package commands

import (
	"context"

	application "rgbfaucet/contexts/asset-distribution/faucet-service/application"
	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
	"rgbfaucet/contexts/asset-distribution/faucet-service/ports"
)

// SendBatches drains pending requests in creation order, partitions them by
// asset, and issues one batched send per asset. Requests included in a
// successful send move to sent atomically as a set; a failed send leaves its
// whole partition pending for the next cycle. Returns how many requests were
// moved to sent.
func (uc UseCase) SendBatches(ctx context.Context) (int, error) {
	logger := application.ResolveLogger(uc.Logger)

	pending, err := uc.Repository.List(ctx, ports.RequestFilter{
		Status: entities.RequestStatusPending,
	})
	if err != nil {
		logger.Error("faucet batch cycle failed listing pending requests",
			"event", "faucet_batch_list_pending_failed",
			"module", "asset-distribution/faucet-service",
			"layer", "application",
			"error", err.Error(),
		)
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	// Order-preserving partition by asset: List returns creation order, so
	// each partition keeps oldest-first fairness.
	partitions := make(map[string][]entities.DistributionRequest)
	var assetOrder []string
	for _, request := range pending {
		if _, seen := partitions[request.AssetID]; !seen {
			assetOrder = append(assetOrder, request.AssetID)
		}
		partitions[request.AssetID] = append(partitions[request.AssetID], request)
	}

	limit := uc.batchLimit()
	sent := 0
	for _, assetID := range assetOrder {
		batch := partitions[assetID]
		if len(batch) > limit {
			batch = batch[:limit]
		}

		recipients := make([]entities.Recipient, 0, len(batch))
		ids := make([]int64, 0, len(batch))
		for _, request := range batch {
			recipients = append(recipients, entities.Recipient{
				RecipientID:        request.RecipientID,
				Amount:             request.Amount,
				TransportEndpoints: uc.TransportEndpoints,
			})
			ids = append(ids, request.ID)
		}

		txid, err := uc.Wallet.SendBatch(ctx, assetID, recipients)
		if err != nil {
			// All-or-nothing at the wallet layer: nothing in this partition
			// changed state, so it retries next cycle. Other partitions are
			// unaffected.
			logger.Error("faucet batch send failed",
				"event", "faucet_batch_send_failed",
				"module", "asset-distribution/faucet-service",
				"layer", "application",
				"asset_id", assetID,
				"recipients", len(recipients),
				"error", err.Error(),
			)
			continue
		}

		// Recording the txid ties each request to its own transfer, so
		// reconciliation never confuses it with an older transfer that
		// happens to share the recipient ID.
		if err := uc.Repository.MarkSent(ctx, ids, txid); err != nil {
			logger.Error("faucet batch status update failed",
				"event", "faucet_batch_status_update_failed",
				"module", "asset-distribution/faucet-service",
				"layer", "application",
				"asset_id", assetID,
				"txid", txid,
				"error", err.Error(),
			)
			return sent, err
		}
		sent += len(ids)

		logger.Info("faucet batch sent",
			"event", "faucet_batch_sent",
			"module", "asset-distribution/faucet-service",
			"layer", "application",
			"asset_id", assetID,
			"txid", txid,
			"recipients", len(recipients),
		)
	}
	return sent, nil
}

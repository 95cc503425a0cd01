package commands

import (
	"context"

	application "rgbfaucet/contexts/asset-distribution/faucet-service/application"
	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
	domainerrors "rgbfaucet/contexts/asset-distribution/faucet-service/domain/errors"
)

const reserveSlotExpiryMinutes = 60

// ReserveAddress returns a fresh wallet address for topping up the BTC
// reserve that funds transfer fees and UTXO creation.
func (uc UseCase) ReserveAddress(ctx context.Context) (string, error) {
	address, err := uc.Wallet.NewAddress(ctx)
	if err != nil {
		application.ResolveLogger(uc.Logger).Error("faucet reserve address failed",
			"event", "faucet_reserve_address_failed",
			"module", "asset-distribution/faucet-service",
			"layer", "application",
			"error", err.Error(),
		)
		return "", err
	}
	return address, nil
}

// CreateReserveSlot blinds a receive slot on the given asset so an operator
// can send assets back to the faucet. Amount zero means any amount.
func (uc UseCase) CreateReserveSlot(ctx context.Context, assetID string, amount uint64) (entities.ReceiveSlot, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !uc.knownAsset(assetID) {
		return entities.ReceiveSlot{}, domainerrors.ErrUnknownAsset
	}
	slot, err := uc.Wallet.CreateReceiveSlot(ctx, assetID, amount, uc.TransportEndpoints, reserveSlotExpiryMinutes)
	if err != nil {
		logger.Error("faucet reserve slot creation failed",
			"event", "faucet_reserve_slot_failed",
			"module", "asset-distribution/faucet-service",
			"layer", "application",
			"asset_id", assetID,
			"error", err.Error(),
		)
		return entities.ReceiveSlot{}, err
	}
	logger.Info("faucet reserve slot created",
		"event", "faucet_reserve_slot_created",
		"module", "asset-distribution/faucet-service",
		"layer", "application",
		"asset_id", assetID,
		"recipient_id", slot.RecipientID,
	)
	return slot, nil
}

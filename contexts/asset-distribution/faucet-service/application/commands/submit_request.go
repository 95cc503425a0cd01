package commands

import (
	"context"
	"strings"

	application "rgbfaucet/contexts/asset-distribution/faucet-service/application"
	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
	domainerrors "rgbfaucet/contexts/asset-distribution/faucet-service/domain/errors"
	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/services"
)

type SubmitRequestCommand struct {
	WalletID    string
	AssetGroup  string
	RecipientID string
}

// SubmitRequest is the admission gate. It validates the wallet identity,
// resolves asset and amount from group configuration, and persists a pending
// request if the wallet still has quota and the recipient is not already held
// by a live request. Sending is deferred to the batch scheduler; the wallet
// collaborator is never touched here.
func (uc UseCase) SubmitRequest(ctx context.Context, cmd SubmitRequestCommand) (entities.DistributionRequest, error) {
	logger := application.ResolveLogger(uc.Logger)
	walletID := strings.TrimSpace(cmd.WalletID)
	groupName := strings.TrimSpace(cmd.AssetGroup)
	recipientID := strings.TrimSpace(cmd.RecipientID)

	if !services.ValidWalletID(walletID) {
		logger.Warn("faucet admission rejected wallet id",
			"event", "faucet_admission_invalid_wallet_id",
			"module", "asset-distribution/faucet-service",
			"layer", "application",
			"asset_group", groupName,
		)
		return entities.DistributionRequest{}, domainerrors.ErrInvalidWalletID
	}
	if recipientID == "" {
		return entities.DistributionRequest{}, domainerrors.ErrInvalidRecipientID
	}

	// An omitted group selects the first configured one, so single-group
	// deployments need no group parameter at all.
	if groupName == "" {
		if names := uc.Groups.GroupNames(); len(names) > 0 {
			groupName = names[0]
		}
	}

	group, ok := uc.Groups.Group(groupName)
	if !ok {
		logger.Warn("faucet admission rejected unknown group",
			"event", "faucet_admission_unknown_group",
			"module", "asset-distribution/faucet-service",
			"layer", "application",
			"wallet_id", walletID,
			"asset_group", groupName,
		)
		return entities.DistributionRequest{}, domainerrors.ErrUnknownAssetGroup
	}

	now := uc.now()
	request := entities.DistributionRequest{
		WalletID:    walletID,
		AssetGroup:  groupName,
		AssetID:     group.AssetID,
		RecipientID: recipientID,
		Amount:      group.AmountPerRequest,
		Status:      entities.RequestStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := uc.Repository.CreateWithinQuota(ctx, request, group.RequestsPerWallet)
	if err != nil {
		logger.Warn("faucet admission rejected",
			"event", "faucet_admission_rejected",
			"module", "asset-distribution/faucet-service",
			"layer", "application",
			"wallet_id", walletID,
			"asset_group", groupName,
			"error", err.Error(),
		)
		return entities.DistributionRequest{}, err
	}

	logger.Info("faucet request admitted",
		"event", "faucet_request_admitted",
		"module", "asset-distribution/faucet-service",
		"layer", "application",
		"request_id", created.ID,
		"wallet_id", created.WalletID,
		"asset_group", created.AssetGroup,
		"asset_id", created.AssetID,
		"amount", created.Amount,
	)
	return created, nil
}

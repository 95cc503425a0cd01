package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "rgbfaucet/contexts/asset-distribution/faucet-service/application"
	"rgbfaucet/contexts/asset-distribution/faucet-service/application/commands"
	"rgbfaucet/contexts/asset-distribution/faucet-service/application/queries"
	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
	"rgbfaucet/contexts/asset-distribution/faucet-service/ports"
	httptransport "rgbfaucet/contexts/asset-distribution/faucet-service/transport/http"
)

type Handler struct {
	Commands commands.UseCase
	Queries  queries.UseCase
	Logger   *slog.Logger
}

// ReceiveAssetHandler admits a distribution request and acknowledges with the
// pending request plus the asset it will be served from.
func (h Handler) ReceiveAssetHandler(
	ctx context.Context,
	walletID, assetGroup, recipientID string,
) (httptransport.ReceiveAssetResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	request, err := h.Commands.SubmitRequest(ctx, commands.SubmitRequestCommand{
		WalletID:    walletID,
		AssetGroup:  assetGroup,
		RecipientID: recipientID,
	})
	if err != nil {
		return httptransport.ReceiveAssetResponse{}, err
	}

	response := httptransport.ReceiveAssetResponse{Request: requestDTO(request)}
	assets, err := h.Queries.AssetOverview(ctx)
	if err != nil {
		// The request is already admitted; asset metadata is best effort.
		logger.Warn("faucet http receive asset overview lookup failed",
			"event", "faucet_http_receive_asset_overview_failed",
			"module", "asset-distribution/faucet-service",
			"layer", "adapter",
			"asset_id", request.AssetID,
			"error", err.Error(),
		)
		response.Asset = httptransport.AssetDTO{AssetID: request.AssetID}
		return response, nil
	}
	for _, asset := range assets {
		if asset.AssetID == request.AssetID {
			response.Asset = assetDTO(asset)
			break
		}
	}
	if response.Asset.AssetID == "" {
		response.Asset = httptransport.AssetDTO{AssetID: request.AssetID}
	}
	return response, nil
}

func (h Handler) ReceiveConfigHandler(ctx context.Context, walletID string) (httptransport.ReceiveConfigResponse, error) {
	remaining, err := h.Queries.RemainingQuota(ctx, walletID)
	if err != nil {
		return httptransport.ReceiveConfigResponse{}, err
	}
	groups := make(map[string]httptransport.GroupConfigDTO, len(remaining))
	for name, left := range remaining {
		group, ok := h.Queries.Groups.Group(name)
		if !ok {
			continue
		}
		groups[name] = httptransport.GroupConfigDTO{
			AssetID:      group.AssetID,
			Amount:       group.AmountPerRequest,
			RequestsLeft: left,
		}
	}
	return httptransport.ReceiveConfigResponse{Groups: groups}, nil
}

func (h Handler) ListRequestsHandler(
	ctx context.Context,
	status, assetGroup, assetID, recipientID, walletID string,
) (httptransport.ListRequestsResponse, error) {
	requests, err := h.Queries.ListRequests(ctx, ports.RequestFilter{
		Status:      entities.RequestStatus(strings.TrimSpace(status)),
		AssetGroup:  strings.TrimSpace(assetGroup),
		AssetID:     strings.TrimSpace(assetID),
		RecipientID: strings.TrimSpace(recipientID),
		WalletID:    strings.TrimSpace(walletID),
	})
	if err != nil {
		return httptransport.ListRequestsResponse{}, err
	}
	dtos := make([]httptransport.RequestDTO, 0, len(requests))
	for _, request := range requests {
		dtos = append(dtos, requestDTO(request))
	}
	return httptransport.ListRequestsResponse{Requests: dtos}, nil
}

func (h Handler) ListTransfersHandler(ctx context.Context, status string) (httptransport.ListTransfersResponse, error) {
	transfers, err := h.Queries.ListTransfers(ctx, entities.TransferStatus(strings.TrimSpace(status)))
	if err != nil {
		return httptransport.ListTransfersResponse{}, err
	}
	dtos := make([]httptransport.TransferDTO, 0, len(transfers))
	for _, transfer := range transfers {
		dto := httptransport.TransferDTO{
			AssetID:            transfer.AssetID,
			RecipientID:        transfer.RecipientID,
			Amount:             transfer.Amount,
			Status:             string(transfer.Status),
			Kind:               string(transfer.Kind),
			TxID:               transfer.TxID,
			TransportEndpoints: transfer.TransportEndpoints,
		}
		if !transfer.ExpiresAt.IsZero() {
			dto.ExpiresAt = transfer.ExpiresAt.Format(time.RFC3339)
		}
		dtos = append(dtos, dto)
	}
	return httptransport.ListTransfersResponse{Transfers: dtos}, nil
}

func (h Handler) ListAssetsHandler(ctx context.Context) (httptransport.ListAssetsResponse, error) {
	assets, err := h.Queries.AssetOverview(ctx)
	if err != nil {
		return httptransport.ListAssetsResponse{}, err
	}
	byID := make(map[string]httptransport.AssetDTO, len(assets))
	for _, asset := range assets {
		byID[asset.AssetID] = assetDTO(asset)
	}
	return httptransport.ListAssetsResponse{Assets: byID}, nil
}

func (h Handler) ListUnspentsHandler(ctx context.Context) (httptransport.ListUnspentsResponse, error) {
	unspents, err := h.Queries.ListUnspents(ctx)
	if err != nil {
		return httptransport.ListUnspentsResponse{}, err
	}
	dtos := make([]httptransport.UnspentDTO, 0, len(unspents))
	for _, unspent := range unspents {
		dto := httptransport.UnspentDTO{
			TxID:        unspent.TxID,
			Vout:        unspent.Vout,
			BTCAmount:   unspent.BTCAmount,
			Colorable:   unspent.Colorable,
			Allocations: make([]httptransport.AllocationDTO, 0, len(unspent.Allocations)),
		}
		for _, allocation := range unspent.Allocations {
			dto.Allocations = append(dto.Allocations, httptransport.AllocationDTO{
				AssetID: allocation.AssetID,
				Amount:  allocation.Amount,
				Settled: allocation.Settled,
			})
		}
		dtos = append(dtos, dto)
	}
	return httptransport.ListUnspentsResponse{Unspents: dtos}, nil
}

func (h Handler) RefreshHandler(ctx context.Context, assetID string) (httptransport.ResultResponse, error) {
	changed, err := h.Commands.RefreshAsset(ctx, assetID)
	if err != nil {
		return httptransport.ResultResponse{}, err
	}
	return httptransport.ResultResponse{Result: changed}, nil
}

func (h Handler) FailHandler(ctx context.Context) (httptransport.ResultResponse, error) {
	changed, err := h.Commands.FailExpired(ctx)
	if err != nil {
		return httptransport.ResultResponse{}, err
	}
	return httptransport.ResultResponse{Result: changed}, nil
}

func (h Handler) DeleteHandler(ctx context.Context) (httptransport.ResultResponse, error) {
	changed, err := h.Commands.DeleteFailed(ctx)
	if err != nil {
		return httptransport.ResultResponse{}, err
	}
	return httptransport.ResultResponse{Result: changed}, nil
}

func (h Handler) ReserveAddressHandler(ctx context.Context) (httptransport.ReserveAddressResponse, error) {
	address, err := h.Commands.ReserveAddress(ctx)
	if err != nil {
		return httptransport.ReserveAddressResponse{}, err
	}
	return httptransport.ReserveAddressResponse{Address: address}, nil
}

func (h Handler) ReserveSlotHandler(ctx context.Context, assetID string, amount uint64) (httptransport.ReserveSlotResponse, error) {
	slot, err := h.Commands.CreateReserveSlot(ctx, assetID, amount)
	if err != nil {
		return httptransport.ReserveSlotResponse{}, err
	}
	return httptransport.ReserveSlotResponse{
		RecipientID: slot.RecipientID,
		Expiration:  slot.ExpiresAt.Format(time.RFC3339),
	}, nil
}

func requestDTO(request entities.DistributionRequest) httptransport.RequestDTO {
	return httptransport.RequestDTO{
		ID:          request.ID,
		WalletID:    request.WalletID,
		AssetGroup:  request.AssetGroup,
		AssetID:     request.AssetID,
		RecipientID: request.RecipientID,
		Amount:      request.Amount,
		Status:      string(request.Status),
		TxID:        request.TxID,
		CreatedAt:   request.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   request.UpdatedAt.Format(time.RFC3339),
	}
}

func assetDTO(asset entities.AssetInfo) httptransport.AssetDTO {
	return httptransport.AssetDTO{
		AssetID:   asset.AssetID,
		Name:      asset.Name,
		Precision: asset.Precision,
		Balance:   asset.Balance,
	}
}

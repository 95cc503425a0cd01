package ports

import (
	"context"
	"time"

	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
)

// RequestFilter selects requests by exact match; zero-value fields are
// ignored and populated fields combine conjunctively.
type RequestFilter struct {
	Status      entities.RequestStatus
	AssetGroup  string
	AssetID     string
	RecipientID string
	WalletID    string
}

func (f RequestFilter) Empty() bool {
	return f.Status == "" && f.AssetGroup == "" && f.AssetID == "" &&
		f.RecipientID == "" && f.WalletID == ""
}

// RequestRepository is the persistence surface for distribution requests.
type RequestRepository interface {
	// CreateWithinQuota inserts a pending request only if the wallet has
	// quota left for the group (fewer than maxAllowed non-failed requests)
	// and no live request holds the same recipient ID. The quota read, the
	// duplicate check, and the insert are one atomic unit: two concurrent
	// admissions must never both observe the same free slot.
	CreateWithinQuota(ctx context.Context, request entities.DistributionRequest, maxAllowed int) (entities.DistributionRequest, error)

	// List returns requests matching the filter, ordered by creation time.
	List(ctx context.Context, filter RequestFilter) ([]entities.DistributionRequest, error)

	// UpdateStatus transitions the given request IDs to status atomically as
	// a set; a concurrent reader never observes a partial transition.
	UpdateStatus(ctx context.Context, ids []int64, status entities.RequestStatus) error

	// MarkSent transitions pending requests to sent and records the batch
	// transaction ID on each, with the same all-or-nothing semantics as
	// UpdateStatus.
	MarkSent(ctx context.Context, ids []int64, txid string) error

	// CountByWalletAndGroup counts requests for the pair, excluding the
	// given statuses.
	CountByWalletAndGroup(ctx context.Context, walletID, assetGroup string, exclude []entities.RequestStatus) (int, error)
}

// Wallet is the blockchain wallet collaborator boundary. Every call may block
// on network or storage I/O.
type Wallet interface {
	// SendBatch constructs and broadcasts one on-chain transfer for a single
	// asset to many recipients. All-or-nothing: on error no recipient was
	// served.
	SendBatch(ctx context.Context, assetID string, recipients []entities.Recipient) (string, error)

	// Refresh asks the wallet to re-derive transfer state for the asset from
	// the chain.
	Refresh(ctx context.Context, assetID string) error

	ListTransfers(ctx context.Context, assetID string) ([]entities.TransferView, error)

	// FailExpiredTransfers marks transfers still awaiting counterparty action
	// past their deadline as failed. Returns whether anything changed.
	FailExpiredTransfers(ctx context.Context) (bool, error)

	// DeleteFailedTransfers removes wallet-side failed transfers. Returns
	// whether anything was deleted.
	DeleteFailedTransfers(ctx context.Context) (bool, error)

	CreateReceiveSlot(ctx context.Context, assetID string, amount uint64, transportEndpoints []string, expiryMinutes int) (entities.ReceiveSlot, error)

	ListAssets(ctx context.Context) ([]entities.AssetInfo, error)
	ListUnspents(ctx context.Context) ([]entities.Unspent, error)
	NewAddress(ctx context.Context) (string, error)
}

// GroupConfig resolves asset-group configuration. Implementations are
// immutable for the process lifetime.
type GroupConfig interface {
	Group(name string) (entities.AssetGroup, bool)
	GroupNames() []string
}

type Clock interface {
	Now() time.Time
}

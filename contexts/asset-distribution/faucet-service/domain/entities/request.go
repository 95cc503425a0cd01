package entities

import "time"

type RequestStatus string

const (
	RequestStatusPending RequestStatus = "pending"
	RequestStatusSent    RequestStatus = "sent"
	RequestStatusServed  RequestStatus = "served"
	RequestStatusFailed  RequestStatus = "failed"
)

// CanTransitionTo encodes the request state machine:
// pending -> sent -> served, with failed reachable from sent only.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	switch s {
	case RequestStatusPending:
		return next == RequestStatusSent
	case RequestStatusSent:
		return next == RequestStatusServed || next == RequestStatusFailed
	default:
		return false
	}
}

func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusServed || s == RequestStatusFailed
}

// DistributionRequest is one user request for a faucet distribution.
// WalletID is always a fixed-length hash of the requester's identity, never a
// raw extended public key; the quota ledger relies on that.
type DistributionRequest struct {
	ID          int64
	WalletID    string
	AssetGroup  string
	AssetID     string
	RecipientID string
	Amount      uint64
	Status      RequestStatus

	// TxID is the batch transaction that carried this request, recorded at
	// the pending to sent transition. Reconciliation matches wallet
	// transfers against it, so a reused recipient ID can never be confused
	// with a transfer from an earlier, failed attempt.
	TxID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AssetGroup is a configured bucket of one asset with its own per-wallet quota
// and fixed per-request amount. Loaded once per process and immutable after.
type AssetGroup struct {
	AssetID           string
	AmountPerRequest  uint64
	RequestsPerWallet int
}

package entities

import "time"

type TransferStatus string

const (
	TransferStatusWaitingCounterparty  TransferStatus = "WAITING_COUNTERPARTY"
	TransferStatusWaitingConfirmations TransferStatus = "WAITING_CONFIRMATIONS"
	TransferStatusSettled              TransferStatus = "SETTLED"
	TransferStatusFailed               TransferStatus = "FAILED"
)

// Pending reports whether the transfer is still in flight on the wallet side.
func (s TransferStatus) Pending() bool {
	return s == TransferStatusWaitingCounterparty || s == TransferStatusWaitingConfirmations
}

type TransferKind string

const (
	TransferKindIssuance TransferKind = "ISSUANCE"
	TransferKindSend     TransferKind = "SEND"
	TransferKindReceive  TransferKind = "RECEIVE"
)

// TransferView is the wallet collaborator's read model of one transfer. The
// faucet never mutates it directly; it only asks the wallet to refresh or
// fail transfers and reflects the result into request status.
type TransferView struct {
	AssetID            string
	RecipientID        string
	Amount             uint64
	Status             TransferStatus
	Kind               TransferKind
	TxID               string
	TransportEndpoints []string
	ExpiresAt          time.Time
}

// Recipient is one entry of a batched send: a blinded recipient identifier
// with the amount and the transport endpoints it can be reached through.
type Recipient struct {
	RecipientID        string
	Amount             uint64
	TransportEndpoints []string
}

// ReceiveSlot is a freshly blinded receive identifier with its expiration,
// used by the reserve top-up path.
type ReceiveSlot struct {
	RecipientID string
	ExpiresAt   time.Time
}

// AssetInfo describes one asset held by the faucet wallet.
type AssetInfo struct {
	AssetID   string
	Name      string
	Precision uint8
	Balance   uint64
}

// Unspent is one wallet UTXO with its asset allocations.
type Unspent struct {
	TxID        string
	Vout        uint32
	BTCAmount   uint64
	Colorable   bool
	Allocations []Allocation
}

type Allocation struct {
	AssetID string
	Amount  uint64
	Settled bool
}

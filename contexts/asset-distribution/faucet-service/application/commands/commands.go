package commands

import (
	"log/slog"
	"time"

	"rgbfaucet/contexts/asset-distribution/faucet-service/ports"
)

const defaultBatchLimit = 25

// UseCase carries the write-side dependencies of the faucet: admission,
// batch sending, and transfer reconciliation.
type UseCase struct {
	Repository ports.RequestRepository
	Wallet     ports.Wallet
	Groups     ports.GroupConfig
	Clock      ports.Clock
	Logger     *slog.Logger

	// BatchLimit caps the recipients included in one send call. Requests
	// beyond the cap stay pending and lead the next cycle.
	BatchLimit int

	// TransportEndpoints are handed to the wallet for every recipient.
	TransportEndpoints []string
}

// transferKey identifies one recipient leg of a batched send. Matching on
// the txid as well as the recipient keeps reconciliation from attributing a
// stale transfer to a later request that reuses the recipient ID.
type transferKey struct {
	txid        string
	recipientID string
}

func (uc UseCase) batchLimit() int {
	if uc.BatchLimit <= 0 {
		return defaultBatchLimit
	}
	return uc.BatchLimit
}

func (uc UseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}

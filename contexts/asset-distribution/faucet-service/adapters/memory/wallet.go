package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
	domainerrors "rgbfaucet/contexts/asset-distribution/faucet-service/domain/errors"
	"rgbfaucet/contexts/asset-distribution/faucet-service/ports"

	"github.com/google/uuid"
)

// Wallet is an in-memory wallet collaborator. It stands in for the on-chain
// wallet library the same way the in-process bus stands in for an external
// broker: full port semantics, no network. Tests drive confirmation and
// expiry through Mine and AdvanceTime.
type Wallet struct {
	mu        sync.Mutex
	assets    map[string]*entities.AssetInfo
	transfers []walletTransfer
	unspents  []entities.Unspent

	// offset shifts the wallet's view of the current time. Zero in
	// production; tests advance it to force expiry without sleeping.
	offset time.Duration

	// SendErr, when set, makes SendBatch fail without side effects.
	SendErr error
}

// sendExpiry is how long a send may wait for its counterparty before the
// fail pass may reclaim it.
const sendExpiry = 30 * time.Minute

type walletTransfer struct {
	view      entities.TransferView
	confirmed bool
}

func NewWallet(assets []entities.AssetInfo) *Wallet {
	assetMap := make(map[string]*entities.AssetInfo, len(assets))
	transfers := make([]walletTransfer, 0, len(assets))
	for i := range assets {
		asset := assets[i]
		assetMap[asset.AssetID] = &asset
		// Issuance transfers exist for every seeded asset, like a freshly
		// provisioned faucet wallet.
		transfers = append(transfers, walletTransfer{
			view: entities.TransferView{
				AssetID: asset.AssetID,
				Amount:  asset.Balance,
				Status:  entities.TransferStatusSettled,
				Kind:    entities.TransferKindIssuance,
				TxID:    uuid.NewString(),
			},
			confirmed: true,
		})
	}
	return &Wallet{
		assets:    assetMap,
		transfers: transfers,
	}
}

// clock is wall time plus the test offset, so transfers expire on real
// elapsed time in a long-running process.
func (w *Wallet) clock() time.Time {
	return time.Now().UTC().Add(w.offset)
}

func (w *Wallet) SendBatch(_ context.Context, assetID string, recipients []entities.Recipient) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.SendErr != nil {
		return "", w.SendErr
	}
	asset, ok := w.assets[assetID]
	if !ok {
		return "", domainerrors.ErrUnknownAsset
	}
	var total uint64
	for _, recipient := range recipients {
		total += recipient.Amount
	}
	if total > asset.Balance {
		return "", domainerrors.ErrCollaboratorUnavailable
	}

	// A fresh send waits for the counterparty to pick up the consignment
	// before anything hits the chain; it expires if they never do.
	txid := uuid.NewString()
	for _, recipient := range recipients {
		w.transfers = append(w.transfers, walletTransfer{
			view: entities.TransferView{
				AssetID:            assetID,
				RecipientID:        recipient.RecipientID,
				Amount:             recipient.Amount,
				Status:             entities.TransferStatusWaitingCounterparty,
				Kind:               entities.TransferKindSend,
				TxID:               txid,
				TransportEndpoints: recipient.TransportEndpoints,
				ExpiresAt:          w.clock().Add(sendExpiry),
			},
		})
	}
	asset.Balance -= total
	return txid, nil
}

func (w *Wallet) Refresh(_ context.Context, assetID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.assets[assetID]; !ok {
		return domainerrors.ErrUnknownAsset
	}
	for i := range w.transfers {
		transfer := &w.transfers[i]
		if transfer.view.AssetID != assetID {
			continue
		}
		if transfer.view.Status.Pending() && transfer.confirmed {
			transfer.view.Status = entities.TransferStatusSettled
		}
	}
	return nil
}

func (w *Wallet) ListTransfers(_ context.Context, assetID string) ([]entities.TransferView, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.assets[assetID]; !ok {
		return nil, domainerrors.ErrUnknownAsset
	}
	var views []entities.TransferView
	for _, transfer := range w.transfers {
		if transfer.view.AssetID == assetID {
			views = append(views, transfer.view)
		}
	}
	return views, nil
}

func (w *Wallet) FailExpiredTransfers(_ context.Context) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.clock()
	changed := false
	for i := range w.transfers {
		transfer := &w.transfers[i]
		if transfer.view.Status != entities.TransferStatusWaitingCounterparty {
			continue
		}
		if transfer.view.ExpiresAt.IsZero() || transfer.view.ExpiresAt.After(now) {
			continue
		}
		transfer.view.Status = entities.TransferStatusFailed
		changed = true
	}
	return changed, nil
}

func (w *Wallet) DeleteFailedTransfers(_ context.Context) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	kept := w.transfers[:0]
	deleted := false
	for _, transfer := range w.transfers {
		if transfer.view.Status == entities.TransferStatusFailed {
			deleted = true
			continue
		}
		kept = append(kept, transfer)
	}
	w.transfers = kept
	return deleted, nil
}

func (w *Wallet) CreateReceiveSlot(
	_ context.Context,
	assetID string,
	amount uint64,
	transportEndpoints []string,
	expiryMinutes int,
) (entities.ReceiveSlot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.assets[assetID]; !ok {
		return entities.ReceiveSlot{}, domainerrors.ErrUnknownAsset
	}
	recipientID := "utxob:" + strings.ReplaceAll(uuid.NewString(), "-", "")
	expiresAt := w.clock().Add(time.Duration(expiryMinutes) * time.Minute)
	w.transfers = append(w.transfers, walletTransfer{
		view: entities.TransferView{
			AssetID:            assetID,
			RecipientID:        recipientID,
			Amount:             amount,
			Status:             entities.TransferStatusWaitingCounterparty,
			Kind:               entities.TransferKindReceive,
			TransportEndpoints: transportEndpoints,
			ExpiresAt:          expiresAt,
		},
	})
	return entities.ReceiveSlot{RecipientID: recipientID, ExpiresAt: expiresAt}, nil
}

func (w *Wallet) ListAssets(_ context.Context) ([]entities.AssetInfo, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	assets := make([]entities.AssetInfo, 0, len(w.assets))
	for _, asset := range w.assets {
		assets = append(assets, *asset)
	}
	return assets, nil
}

func (w *Wallet) ListUnspents(_ context.Context) ([]entities.Unspent, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return append([]entities.Unspent(nil), w.unspents...), nil
}

func (w *Wallet) NewAddress(_ context.Context) (string, error) {
	return "bcrt1q" + strings.ReplaceAll(uuid.NewString(), "-", "")[:32], nil
}

// Mine marks in-flight transfers as confirmed; the next Refresh settles
// them. Test support, mirrors counterparty pickup plus a mined block on a
// regtest chain.
func (w *Wallet) Mine() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.transfers {
		if w.transfers[i].view.Status.Pending() {
			w.transfers[i].confirmed = true
		}
	}
}

// AdvanceTime moves the wallet's expiry clock forward. Test support.
func (w *Wallet) AdvanceTime(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.offset += d
}

// SeedUnspents installs a UTXO view. Test support.
func (w *Wallet) SeedUnspents(unspents []entities.Unspent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.unspents = append([]entities.Unspent(nil), unspents...)
}

var _ ports.Wallet = (*Wallet)(nil)

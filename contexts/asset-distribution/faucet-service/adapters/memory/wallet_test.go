package memory_test

import (
	"context"
	"testing"
	"time"

	"rgbfaucet/contexts/asset-distribution/faucet-service/adapters/memory"
	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
)

func newWalletWithAsset() *memory.Wallet {
	return memory.NewWallet([]entities.AssetInfo{
		{AssetID: storeAsset, Name: "Faucet Token", Precision: 0, Balance: 100},
	})
}

func TestExpiryTracksWallClock(t *testing.T) {
	// A slot expiring immediately must be reclaimed without AdvanceTime:
	// a long-running process sees real elapsed time, not the time the
	// wallet was constructed at.
	wallet := newWalletWithAsset()
	ctx := context.Background()

	if _, err := wallet.CreateReceiveSlot(ctx, storeAsset, 1, nil, 0); err != nil {
		t.Fatalf("create receive slot failed: %v", err)
	}
	changed, err := wallet.FailExpiredTransfers(ctx)
	if err != nil {
		t.Fatalf("fail expired transfers failed: %v", err)
	}
	if !changed {
		t.Fatal("an already-expired slot should fail on wall-clock time alone")
	}
}

func TestSendExpiryRespectsAdvanceTime(t *testing.T) {
	wallet := newWalletWithAsset()
	ctx := context.Background()

	if _, err := wallet.SendBatch(ctx, storeAsset, []entities.Recipient{
		{RecipientID: "utxob:clock-1", Amount: 1},
	}); err != nil {
		t.Fatalf("send batch failed: %v", err)
	}

	changed, err := wallet.FailExpiredTransfers(ctx)
	if err != nil {
		t.Fatalf("fail expired transfers failed: %v", err)
	}
	if changed {
		t.Fatal("a fresh send should not be expired")
	}

	wallet.AdvanceTime(time.Hour)
	changed, err = wallet.FailExpiredTransfers(ctx)
	if err != nil {
		t.Fatalf("fail expired transfers failed: %v", err)
	}
	if !changed {
		t.Fatal("advancing past the deadline should fail the send")
	}
}

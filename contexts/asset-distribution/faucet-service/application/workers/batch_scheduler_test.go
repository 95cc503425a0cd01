package workers_test

import (
	"context"
	"testing"
	"time"

	"rgbfaucet/contexts/asset-distribution/faucet-service/adapters/memory"
	"rgbfaucet/contexts/asset-distribution/faucet-service/application/commands"
	"rgbfaucet/contexts/asset-distribution/faucet-service/application/workers"
	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/services"
)

const schedulerAsset = "rgb:2dkSTbr-jFhznbPmo-TQafzswCN-av4gTsJjX-ttx6CNou5-M98k8Zd"

func newScheduler(interval time.Duration) (*workers.BatchScheduler, *memory.Store, *memory.Wallet) {
	store := memory.NewStore(nil)
	wallet := memory.NewWallet([]entities.AssetInfo{
		{AssetID: schedulerAsset, Name: "Scheduler Token", Balance: 1000},
	})
	uc := commands.UseCase{
		Repository: store,
		Wallet:     wallet,
		Groups: memory.NewGroups(map[string]entities.AssetGroup{
			"group_1": {AssetID: schedulerAsset, AmountPerRequest: 1, RequestsPerWallet: 10},
		}),
		Clock: store,
	}
	return workers.NewBatchScheduler(uc, interval, nil), store, wallet
}

func submit(t *testing.T, store *memory.Store, recipient string) entities.DistributionRequest {
	t.Helper()
	now := time.Now().UTC()
	return store.Seed(entities.DistributionRequest{
		WalletID:    services.HashWalletID("xpub-scheduler"),
		AssetGroup:  "group_1",
		AssetID:     schedulerAsset,
		RecipientID: recipient,
		Amount:      1,
		Status:      entities.RequestStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func TestPauseBlocksPeriodicCycles(t *testing.T) {
	scheduler, store, _ := newScheduler(10 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler.Pause()
	scheduler.Start(ctx)
	defer scheduler.Stop()

	request := submit(t, store, "utxob:paused-1")
	time.Sleep(80 * time.Millisecond)

	stored, _ := store.Get(request.ID)
	if stored.Status != entities.RequestStatusPending {
		t.Fatalf("paused scheduler must not send, got %s", stored.Status)
	}

	scheduler.Resume()
	deadline := time.Now().Add(2 * time.Second)
	for {
		stored, _ = store.Get(request.ID)
		if stored.Status == entities.RequestStatusSent {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("resumed scheduler never sent the request, status %s", stored.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCycleOnceWorksWhilePaused(t *testing.T) {
	scheduler, store, _ := newScheduler(time.Hour)

	scheduler.Pause()
	request := submit(t, store, "utxob:stepped-1")

	if err := scheduler.CycleOnce(context.Background()); err != nil {
		t.Fatalf("on-demand cycle failed: %v", err)
	}
	stored, _ := store.Get(request.ID)
	if stored.Status != entities.RequestStatusSent {
		t.Fatalf("CycleOnce should send even while paused, got %s", stored.Status)
	}
	if !scheduler.Paused() {
		t.Fatal("stepping a cycle must not clear the pause flag")
	}
}

func TestStopTerminatesLoop(t *testing.T) {
	scheduler, store, _ := newScheduler(10 * time.Millisecond)
	ctx := context.Background()

	scheduler.Start(ctx)
	scheduler.Stop()
	time.Sleep(30 * time.Millisecond)

	request := submit(t, store, "utxob:stopped-1")
	time.Sleep(80 * time.Millisecond)

	stored, _ := store.Get(request.ID)
	if stored.Status != entities.RequestStatusPending {
		t.Fatalf("stopped scheduler must not send, got %s", stored.Status)
	}
}

func TestRestartAfterStopResumesSending(t *testing.T) {
	scheduler, store, _ := newScheduler(10 * time.Millisecond)
	ctx := context.Background()

	scheduler.Start(ctx)
	scheduler.Stop()
	time.Sleep(30 * time.Millisecond)

	scheduler.Start(ctx)
	defer scheduler.Stop()

	request := submit(t, store, "utxob:restarted-1")
	deadline := time.Now().Add(2 * time.Second)
	for {
		stored, _ := store.Get(request.ID)
		if stored.Status == entities.RequestStatusSent {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("restarted scheduler never sent the request, status %s", stored.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestOnCycleObserverReportsSends(t *testing.T) {
	scheduler, store, _ := newScheduler(time.Hour)

	var observedSent int
	scheduler.OnCycle = func(sent int, _ bool, _ time.Duration) {
		observedSent += sent
	}

	submit(t, store, "utxob:observed-1")
	submit(t, store, "utxob:observed-2")
	if err := scheduler.CycleOnce(context.Background()); err != nil {
		t.Fatalf("cycle failed: %v", err)
	}
	if observedSent != 2 {
		t.Fatalf("observer should see 2 sends, got %d", observedSent)
	}
}

func TestBatchLimitCapsCycleButKeepsOrder(t *testing.T) {
	store := memory.NewStore(nil)
	wallet := memory.NewWallet([]entities.AssetInfo{
		{AssetID: schedulerAsset, Name: "Scheduler Token", Balance: 1000},
	})
	uc := commands.UseCase{
		Repository: store,
		Wallet:     wallet,
		Groups: memory.NewGroups(map[string]entities.AssetGroup{
			"group_1": {AssetID: schedulerAsset, AmountPerRequest: 1, RequestsPerWallet: 10},
		}),
		Clock:      store,
		BatchLimit: 2,
	}
	scheduler := workers.NewBatchScheduler(uc, time.Hour, nil)

	first := submit(t, store, "utxob:cap-1")
	second := submit(t, store, "utxob:cap-2")
	third := submit(t, store, "utxob:cap-3")

	if err := scheduler.CycleOnce(context.Background()); err != nil {
		t.Fatalf("cycle failed: %v", err)
	}
	for _, expected := range []struct {
		id     int64
		status entities.RequestStatus
	}{
		{first.ID, entities.RequestStatusSent},
		{second.ID, entities.RequestStatusSent},
		{third.ID, entities.RequestStatusPending},
	} {
		stored, _ := store.Get(expected.id)
		if stored.Status != expected.status {
			t.Fatalf("request %d should be %s, got %s", expected.id, expected.status, stored.Status)
		}
	}

	// The next cycle picks up the remainder, oldest first.
	if err := scheduler.CycleOnce(context.Background()); err != nil {
		t.Fatalf("second cycle failed: %v", err)
	}
	stored, _ := store.Get(third.ID)
	if stored.Status != entities.RequestStatusSent {
		t.Fatalf("capped request should be sent on the next cycle, got %s", stored.Status)
	}
}

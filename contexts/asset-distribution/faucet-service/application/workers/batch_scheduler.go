package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	application "rgbfaucet/contexts/asset-distribution/faucet-service/application"
	"rgbfaucet/contexts/asset-distribution/faucet-service/application/commands"
)

const defaultCycleInterval = 10 * time.Second

// BatchScheduler is the faucet's background worker. Each cycle sends pending
// request batches and reconciles outstanding transfers. Pause and resume are
// control-plane signals observed only between cycles: a cycle in flight
// always completes, so a paused scheduler is a quiescent point with no torn
// batch visible anywhere.
//
// Every scheduler instance is self-contained; tests can run several without
// interference.
type BatchScheduler struct {
	commands commands.UseCase
	interval time.Duration
	logger   *slog.Logger

	// OnCycle, when set, observes every completed cycle. The platform layer
	// hangs its instrumentation here without the worker importing it.
	OnCycle func(sent int, reconciled bool, elapsed time.Duration)

	mu      sync.Mutex
	paused  bool
	running bool
	stopCh  chan struct{}

	// cycleMu serializes cycles so an on-demand CycleOnce never interleaves
	// with the periodic loop.
	cycleMu sync.Mutex
}

func NewBatchScheduler(uc commands.UseCase, interval time.Duration, logger *slog.Logger) *BatchScheduler {
	if interval <= 0 {
		interval = defaultCycleInterval
	}
	return &BatchScheduler{
		commands: uc,
		interval: interval,
		logger:   application.ResolveLogger(logger),
	}
}

// Start launches the periodic loop. Calling it while running is a no-op;
// after a Stop it launches a fresh loop.
func (s *BatchScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	// A fresh channel per run, so a restarted scheduler does not observe
	// the previous run's close.
	s.stopCh = make(chan struct{})
	stop := s.stopCh
	s.mu.Unlock()

	s.logger.Info("faucet batch scheduler starting",
		"event", "faucet_scheduler_starting",
		"module", "asset-distribution/faucet-service",
		"layer", "worker",
		"interval", s.interval.String(),
	)
	go s.run(ctx, stop)
}

// Stop terminates the loop. An in-flight cycle completes first.
func (s *BatchScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stopCh)
}

// Pause prevents the next cycle from starting. It does not cancel wallet
// calls already in flight.
func (s *BatchScheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
}

func (s *BatchScheduler) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = false
}

func (s *BatchScheduler) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// CycleOnce runs one full cycle on demand, also honored while paused so
// operators and tests can step the scheduler deterministically. Errors are
// returned to the caller; in the periodic loop they are logged and
// contained.
func (s *BatchScheduler) CycleOnce(ctx context.Context) error {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	started := time.Now()
	sent, err := s.commands.SendBatches(ctx)
	if err != nil {
		return err
	}
	changed, err := s.commands.Reconcile(ctx)
	if err != nil {
		return err
	}

	if s.OnCycle != nil {
		s.OnCycle(sent, changed, time.Since(started))
	}
	s.logger.Debug("faucet scheduler cycle completed",
		"event", "faucet_scheduler_cycle_completed",
		"module", "asset-distribution/faucet-service",
		"layer", "worker",
		"sent", sent,
		"reconciled", changed,
		"elapsed", time.Since(started).String(),
	)
	return nil
}

func (s *BatchScheduler) run(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
		}

		if s.Paused() {
			continue
		}
		if err := s.CycleOnce(ctx); err != nil {
			// The loop is the isolation boundary: a failed cycle leaves
			// request state untouched and the next tick retries.
			s.logger.Error("faucet scheduler cycle failed",
				"event", "faucet_scheduler_cycle_failed",
				"module", "asset-distribution/faucet-service",
				"layer", "worker",
				"error", err.Error(),
			)
		}
	}
}

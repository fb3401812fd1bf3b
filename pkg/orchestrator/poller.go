package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dayo/merchant-bulk-payments/pkg/journal"
	"github.com/dayo/merchant-bulk-payments/pkg/models"
	"github.com/dayo/merchant-bulk-payments/pkg/notify"
	"github.com/dayo/merchant-bulk-payments/pkg/processor"
	"github.com/dayo/merchant-bulk-payments/pkg/queue"
)

// PollerState is the lifecycle state of the tracking loop.
type PollerState string

const (
	PollerIdle      PollerState = "IDLE"
	PollerScheduled PollerState = "SCHEDULED"
	PollerPolling   PollerState = "POLLING"
	PollerDone      PollerState = "DONE"
	PollerTimedOut  PollerState = "TIMED_OUT"
)

// Polling schedule. Sixty attempts five seconds apart bound tracking to about
// five minutes of wall time.
const (
	DefaultInitialDelay = 5 * time.Second
	DefaultPollInterval = 5 * time.Second
	DefaultMaxAttempts  = 60
)

// PollConfig makes the schedule explicit and overridable.
type PollConfig struct {
	InitialDelay time.Duration
	Interval     time.Duration
	MaxAttempts  int
}

// DefaultPollConfig returns the production schedule.
func DefaultPollConfig() PollConfig {
	return PollConfig{
		InitialDelay: DefaultInitialDelay,
		Interval:     DefaultPollInterval,
		MaxAttempts:  DefaultMaxAttempts,
	}
}

// StatusPoller owns a submitted batch handle until a terminal state is
// observed or the attempt budget runs out. Ticks are strictly sequential: the
// next tick is scheduled only after the current one finishes. A transient
// fetch failure is a no-op tick that still consumes budget.
type StatusPoller struct {
	Backend  processor.Client
	Queue    *queue.ItemQueue
	Progress *ProgressAggregator
	Journal  journal.Store
	Notifier notify.Notifier
	Config   PollConfig
	Logger   *slog.Logger

	mu      sync.Mutex
	state   PollerState
	handle  string
	summary *notify.BatchSummary
	done    chan struct{}
}

// NewStatusPoller creates a poller in the Idle state.
func NewStatusPoller(backend processor.Client, q *queue.ItemQueue, progress *ProgressAggregator, j journal.Store, n notify.Notifier, cfg PollConfig, logger *slog.Logger) *StatusPoller {
	return &StatusPoller{
		Backend:  backend,
		Queue:    q,
		Progress: progress,
		Journal:  j,
		Notifier: n,
		Config:   cfg,
		Logger:   logger,
		state:    PollerIdle,
	}
}

// State returns the current lifecycle state.
func (p *StatusPoller) State() PollerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Handle returns the actively tracked handle, empty once tracking stops.
func (p *StatusPoller) Handle() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.handle
}

// Summary returns the final summary once the loop has finished.
func (p *StatusPoller) Summary() (*notify.BatchSummary, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.summary == nil {
		return nil, false
	}
	s := *p.summary
	return &s, true
}

// Wait returns a channel closed when the current loop finishes. Nil if no
// loop was ever started.
func (p *StatusPoller) Wait() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Track starts the polling loop for a handle. Only one loop may be active at
// a time; re-tracking after Done or TimedOut is how manual resume works.
func (p *StatusPoller) Track(ctx context.Context, bulkTransactionID string) error {
	p.mu.Lock()
	if p.state == PollerScheduled || p.state == PollerPolling {
		p.mu.Unlock()
		return ErrPollerActive
	}
	p.state = PollerScheduled
	p.handle = bulkTransactionID
	p.summary = nil
	p.done = make(chan struct{})
	done := p.done
	p.mu.Unlock()

	go func() {
		defer close(done)
		p.run(ctx, bulkTransactionID)
	}()
	return nil
}

// run drives sequential ticks until terminal status, budget exhaustion or
// context cancellation.
func (p *StatusPoller) run(ctx context.Context, handle string) {
	timer := time.NewTimer(p.Config.InitialDelay)
	defer timer.Stop()

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			p.Logger.Warn("batch tracking stopped",
				slog.String("bulk_transaction_id", handle),
				slog.Any("error", ctx.Err()),
			)
			p.mu.Lock()
			p.state = PollerIdle
			p.handle = ""
			p.mu.Unlock()
			return
		case <-timer.C:
		}

		p.mu.Lock()
		p.state = PollerPolling
		p.mu.Unlock()

		attempts++
		batch, err := p.Backend.GetBulkStatus(ctx, handle)
		if err != nil {
			// Transient tick failure: skip the merge, keep the schedule.
			p.Logger.Warn("poll tick failed",
				slog.String("bulk_transaction_id", handle),
				slog.Int("attempt", attempts),
				slog.Any("error", err),
			)
		} else {
			progress := p.Progress.Observe(batch)
			p.Queue.ApplyResults(batch.TransactionResults)

			p.Logger.Info("poll tick",
				slog.String("bulk_transaction_id", handle),
				slog.String("status", string(batch.Status)),
				slog.Int("attempt", attempts),
				slog.Int("percentage", progress.Percentage),
			)

			if batch.Status.Terminal() {
				p.finish(ctx, handle, batch)
				return
			}
		}

		if attempts >= p.Config.MaxAttempts {
			p.timeout(ctx, handle)
			return
		}
		timer.Reset(p.Config.Interval)
	}
}

// finish handles a terminal batch status: stop polling, clear the handle,
// journal and publish the final summary.
func (p *StatusPoller) finish(ctx context.Context, handle string, batch *models.BulkTransactionBatch) {
	summary := notify.BatchSummary{
		BulkTransactionID:      handle,
		Status:                 batch.Status,
		TotalTransactions:      batch.TotalTransactions,
		SuccessfulTransactions: batch.SuccessfulTransactions,
		FailedTransactions:     batch.FailedTransactions,
		CompletedAt:            time.Now(),
	}

	p.mu.Lock()
	p.state = PollerDone
	p.handle = ""
	p.summary = &summary
	p.mu.Unlock()

	// The batch is settled: drop the paid items and reopen the queue so the
	// next batch can be composed. Failed items stay for retry.
	p.Queue.CompleteBatch()

	if p.Journal != nil {
		if err := p.Journal.Finalize(ctx, handle, models.JournalCompleted, batch); err != nil {
			p.Logger.Error("failed to finalize batch record", slog.String("bulk_transaction_id", handle), slog.Any("error", err))
		}
	}
	if err := p.Notifier.PublishBatchSummary(ctx, summary); err != nil {
		p.Logger.Error("failed to publish batch summary", slog.String("bulk_transaction_id", handle), slog.Any("error", err))
	}

	p.Logger.Info("batch completed",
		slog.String("bulk_transaction_id", handle),
		slog.String("status", string(batch.Status)),
		slog.Int("successful", batch.SuccessfulTransactions),
		slog.Int("failed", batch.FailedTransactions),
		slog.Int("total", batch.TotalTransactions),
	)
}

// timeout handles budget exhaustion. Items keep their last known status and
// the queue stays sealed: the batch may still be paying out remotely, so its
// items cannot be reopened for editing until resumed tracking observes a
// terminal status. Exactly one timeout notification goes out.
func (p *StatusPoller) timeout(ctx context.Context, handle string) {
	progress := p.Progress.Snapshot()
	summary := notify.BatchSummary{
		BulkTransactionID:      handle,
		Status:                 models.BatchProcessing,
		TotalTransactions:      progress.Total,
		SuccessfulTransactions: progress.Successful,
		FailedTransactions:     progress.Failed,
		TimedOut:               true,
		CompletedAt:            time.Now(),
	}

	p.mu.Lock()
	p.state = PollerTimedOut
	p.handle = ""
	p.summary = &summary
	p.mu.Unlock()

	if p.Journal != nil {
		batch := &models.BulkTransactionBatch{
			BulkTransactionID:      handle,
			Status:                 models.BatchProcessing,
			TotalTransactions:      progress.Total,
			SuccessfulTransactions: progress.Successful,
			FailedTransactions:     progress.Failed,
			PendingTransactions:    progress.Pending,
		}
		if err := p.Journal.Finalize(ctx, handle, models.JournalTimedOut, batch); err != nil {
			p.Logger.Error("failed to finalize timed-out batch record", slog.String("bulk_transaction_id", handle), slog.Any("error", err))
		}
	}
	if err := p.Notifier.PublishBatchSummary(ctx, summary); err != nil {
		p.Logger.Error("failed to publish timeout summary", slog.String("bulk_transaction_id", handle), slog.Any("error", err))
	}

	p.Logger.Warn(ErrPollTimeout.Error(), slog.String("bulk_transaction_id", handle))
}

package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dayo/merchant-bulk-payments/pkg/journal"
	"github.com/dayo/merchant-bulk-payments/pkg/models"
	"github.com/dayo/merchant-bulk-payments/pkg/processor"
	"github.com/dayo/merchant-bulk-payments/pkg/queue"
	"github.com/google/uuid"
)

// SubmitOptions carries the caller-controlled submission parameters.
type SubmitOptions struct {
	Description        string
	Reference          string
	ProcessInParallel  bool
	StopOnFirstFailure bool
}

// Coordinator freezes the queued items into one batch submission and obtains
// the opaque batch handle. It does not execute payments itself.
type Coordinator struct {
	Backend  processor.Client
	Queue    *queue.ItemQueue
	Journal  journal.Store
	Progress *ProgressAggregator
	UserID   string
	Logger   *slog.Logger
}

// NewCoordinator creates a new Coordinator.
func NewCoordinator(backend processor.Client, q *queue.ItemQueue, j journal.Store, progress *ProgressAggregator, userID string, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		Backend:  backend,
		Queue:    q,
		Journal:  j,
		Progress: progress,
		UserID:   userID,
		Logger:   logger,
	}
}

// Submit sends the full item set to the processor and returns the batch
// handle. On any failure no handle exists, the queue is unsealed and unchanged,
// and no polling has been started, so the same set can be retried.
func (c *Coordinator) Submit(ctx context.Context, opts SubmitOptions) (string, error) {
	items := c.Queue.Items()
	if len(items) == 0 {
		return "", ErrEmptyQueue
	}
	for i := range items {
		// A paid item must never be sent again under a new handle.
		if items[i].Status == models.ItemSuccess {
			return "", fmt.Errorf("%w: item %s", ErrItemAlreadyPaid, items[i].ItemID)
		}
		if err := items[i].CheckPayload(); err != nil {
			return "", fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
		}
	}

	reference := opts.Reference
	if reference == "" {
		reference = "blk-" + uuid.New().String()
	}

	c.Queue.Seal()

	batch, err := c.Backend.SubmitBulk(ctx, &processor.SubmitBulkRequest{
		UserID:             c.UserID,
		Transactions:       items,
		Description:        opts.Description,
		Reference:          reference,
		ProcessInParallel:  opts.ProcessInParallel,
		StopOnFirstFailure: opts.StopOnFirstFailure,
	})
	if err != nil {
		c.Queue.Unseal()
		return "", fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	// Progress must be reset before the first poll can observe anything.
	c.Progress.Reset(len(items))

	if c.Journal != nil {
		rec := &models.BatchRecord{
			BulkTransactionID: batch.BulkTransactionID,
			Reference:         reference,
			UserID:            c.UserID,
			TotalTransactions: len(items),
		}
		if err := c.Journal.RecordSubmission(ctx, rec); err != nil {
			// The handle exists remotely; a journal miss only degrades resume.
			c.Logger.Error("failed to journal batch submission",
				slog.String("bulk_transaction_id", batch.BulkTransactionID),
				slog.Any("error", err),
			)
		}
	}

	c.Logger.Info("bulk batch submitted",
		slog.String("bulk_transaction_id", batch.BulkTransactionID),
		slog.String("reference", reference),
		slog.Int("items", len(items)),
	)
	return batch.BulkTransactionID, nil
}

package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dayo/merchant-bulk-payments/pkg/models"
	"github.com/dayo/merchant-bulk-payments/pkg/processor"
	"github.com/dayo/merchant-bulk-payments/pkg/queue"
)

// RecipientValidator pre-flights the queued items against the payment
// processor and folds the per-item outcomes back into the queue.
type RecipientValidator struct {
	Backend processor.Client
	Queue   *queue.ItemQueue
	Logger  *slog.Logger
}

// NewRecipientValidator creates a new RecipientValidator.
func NewRecipientValidator(backend processor.Client, q *queue.ItemQueue, logger *slog.Logger) *RecipientValidator {
	return &RecipientValidator{Backend: backend, Queue: q, Logger: logger}
}

// Validate sends every queued item to the processor. Items are forwarded
// as-is: per-item validity is the processor's call and comes back inside a
// successful response. A transport or service error aborts the whole call and
// leaves every item untouched.
//
// On success each reported item is marked validated; valid ones stay Pending
// and pick up the resolved account name, invalid ones become Failed with the
// reported error.
func (v *RecipientValidator) Validate(ctx context.Context) (*models.ValidationSummary, error) {
	items := v.Queue.Items()
	if len(items) == 0 {
		return nil, ErrEmptyQueue
	}

	summary, err := v.Backend.ValidateRecipients(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("recipient validation aborted: %w", err)
	}

	v.Queue.ApplyValidation(summary.Results)

	v.Logger.Info("validated recipients",
		slog.Int("total", summary.TotalItems),
		slog.Int("valid", summary.ValidItems),
		slog.Int("invalid", summary.InvalidItems),
	)
	return summary, nil
}

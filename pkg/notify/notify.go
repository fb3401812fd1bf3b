package notify

import (
	"context"
	"time"

	"github.com/dayo/merchant-bulk-payments/pkg/models"
)

// BatchSummary is the terminal outcome of one tracked batch, published exactly
// once when polling stops.
type BatchSummary struct {
	BulkTransactionID      string             `json:"bulk_transaction_id"`
	Reference              string             `json:"reference,omitempty"`
	Status                 models.BatchStatus `json:"status"`
	TotalTransactions      int                `json:"total_transactions"`
	SuccessfulTransactions int                `json:"successful_transactions"`
	FailedTransactions     int                `json:"failed_transactions"`
	TimedOut               bool               `json:"timed_out"`
	CompletedAt            time.Time          `json:"completed_at"`
}

// Notifier publishes batch summaries for downstream consumers.
type Notifier interface {
	PublishBatchSummary(ctx context.Context, summary BatchSummary) error
}

// NoOpNotifier is a notifier that does nothing.
type NoOpNotifier struct{}

// PublishBatchSummary does nothing.
func (n *NoOpNotifier) PublishBatchSummary(ctx context.Context, summary BatchSummary) error {
	return nil
}

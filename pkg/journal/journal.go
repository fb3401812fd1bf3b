package journal

import (
	"context"
	"errors"
	"time"

	"github.com/dayo/merchant-bulk-payments/pkg/models"
)

// ErrRecordNotFound is returned when no journal entry exists for a handle.
var ErrRecordNotFound = errors.New("batch record not found")

// Store is the durable journal of submitted batch handles. Every submission is
// recorded as IN_FLIGHT and later finalized with the terminal outcome or a
// TIMED_OUT marker, which is what makes resuming tracking by handle possible.
type Store interface {
	// RecordSubmission writes a new IN_FLIGHT entry for a freshly obtained handle.
	RecordSubmission(ctx context.Context, rec *models.BatchRecord) error

	// Finalize stamps the entry for a handle with its final state and the
	// counts from the last observed snapshot.
	Finalize(ctx context.Context, bulkTransactionID string, state models.JournalState, batch *models.BulkTransactionBatch) error

	// Get retrieves the entry for a handle.
	Get(ctx context.Context, bulkTransactionID string) (*models.BatchRecord, error)

	// ListInFlight returns entries still marked IN_FLIGHT that were submitted
	// more than minAge ago. Used by the out-of-band reconciler.
	ListInFlight(ctx context.Context, minAge time.Duration) ([]models.BatchRecord, error)
}

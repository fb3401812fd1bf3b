package models

import "time"

// BatchStatus is the backend-reported state of a bulk transaction.
type BatchStatus string

const (
	BatchPending        BatchStatus = "PENDING"
	BatchProcessing     BatchStatus = "PROCESSING"
	BatchPartialSuccess BatchStatus = "PARTIAL_SUCCESS"
	BatchSuccess        BatchStatus = "SUCCESS"
	BatchFailed         BatchStatus = "FAILED"
)

// Terminal reports whether the batch can no longer change state.
func (s BatchStatus) Terminal() bool {
	return s == BatchSuccess || s == BatchFailed || s == BatchPartialSuccess
}

// ItemResult is the backend's per-item outcome inside a batch snapshot.
type ItemResult struct {
	ItemID       string     `json:"item_id"`
	Status       ItemStatus `json:"status"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

// BulkTransactionBatch is a snapshot of the server-side aggregate. It is only
// ever re-fetched, never mutated locally.
type BulkTransactionBatch struct {
	BulkTransactionID      string       `json:"bulk_transaction_id"`
	Status                 BatchStatus  `json:"status"`
	TotalTransactions      int          `json:"total_transactions"`
	SuccessfulTransactions int          `json:"successful_transactions"`
	FailedTransactions     int          `json:"failed_transactions"`
	PendingTransactions    int          `json:"pending_transactions"`
	TransactionResults     []ItemResult `json:"transaction_results,omitempty"`
}

// CountsConsistent reports whether successful+failed+pending == total for the
// snapshot. Every observed snapshot is expected to satisfy this.
func (b *BulkTransactionBatch) CountsConsistent() bool {
	return b.SuccessfulTransactions+b.FailedTransactions+b.PendingTransactions == b.TotalTransactions
}

// JournalState tracks a submitted handle's lifecycle in the local journal.
type JournalState string

const (
	JournalInFlight  JournalState = "IN_FLIGHT"
	JournalCompleted JournalState = "COMPLETED"
	JournalTimedOut  JournalState = "TIMED_OUT"
)

// BatchRecord is the journal entry for one submitted batch handle. It includes
// dynamodbav tags for marshalling.
type BatchRecord struct {
	BulkTransactionID      string       `dynamodbav:"bulk_transaction_id" json:"bulk_transaction_id"`
	Reference              string       `dynamodbav:"reference" json:"reference"`
	UserID                 string       `dynamodbav:"user_id" json:"user_id"`
	State                  JournalState `dynamodbav:"state" json:"state"`
	Status                 BatchStatus  `dynamodbav:"status" json:"status,omitempty"`
	TotalTransactions      int          `dynamodbav:"total_transactions" json:"total_transactions"`
	SuccessfulTransactions int          `dynamodbav:"successful_transactions" json:"successful_transactions"`
	FailedTransactions     int          `dynamodbav:"failed_transactions" json:"failed_transactions"`
	SubmittedAt            time.Time    `dynamodbav:"submitted_at" json:"submitted_at"`
	UpdatedAt              time.Time    `dynamodbav:"updated_at" json:"updated_at"`
	TTL                    int64        `dynamodbav:"ttl,omitempty" json:"-"`
}

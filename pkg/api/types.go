// Package api holds the wire types of the dashboard-facing HTTP surface.
package api

import (
	"github.com/dayo/merchant-bulk-payments/pkg/models"
	"github.com/shopspring/decimal"
)

// NewPaymentItem is the request body for enqueueing or editing an item.
type NewPaymentItem struct {
	ItemID      string               `json:"item_id,omitempty"`
	Mode        models.PaymentMode   `json:"mode"`
	Mno         *models.MnoPayout    `json:"mno,omitempty"`
	Bank        *models.BankPayout   `json:"bank,omitempty"`
	Wallet      *models.WalletPayout `json:"wallet,omitempty"`
	Amount      decimal.Decimal      `json:"amount"`
	Currency    string               `json:"currency"`
	Description string               `json:"description,omitempty"`
}

// PaymentItem is the response representation of a queued item.
type PaymentItem struct {
	ItemID      string               `json:"item_id"`
	Mode        models.PaymentMode   `json:"mode"`
	Mno         *models.MnoPayout    `json:"mno,omitempty"`
	Bank        *models.BankPayout   `json:"bank,omitempty"`
	Wallet      *models.WalletPayout `json:"wallet,omitempty"`
	Amount      decimal.Decimal      `json:"amount"`
	Currency    string               `json:"currency"`
	Description string               `json:"description,omitempty"`
	AccountName string               `json:"account_name,omitempty"`
	Status      models.ItemStatus    `json:"status"`
	Validated   bool                 `json:"validated"`
	Error       string               `json:"error,omitempty"`
}

// SubmitBulkRequest is the request body for submitting the queued items.
type SubmitBulkRequest struct {
	Description        string `json:"description,omitempty"`
	Reference          string `json:"reference,omitempty"`
	ProcessInParallel  bool   `json:"process_in_parallel"`
	StopOnFirstFailure bool   `json:"stop_on_first_failure"`
}

// SubmitBulkResponse returns the opaque batch handle.
type SubmitBulkResponse struct {
	BulkTransactionID string `json:"bulk_transaction_id"`
}

// BulkProgress is the live tracking view for the active (or last) batch.
type BulkProgress struct {
	State             string        `json:"state"`
	BulkTransactionID string        `json:"bulk_transaction_id,omitempty"`
	Total             int           `json:"total"`
	Successful        int           `json:"successful"`
	Failed            int           `json:"failed"`
	Pending           int           `json:"pending"`
	Percentage        int           `json:"percentage"`
	Items             []PaymentItem `json:"items"`
	Summary           *BatchSummary `json:"summary,omitempty"`
}

// BatchSummary is the final outcome of a tracked batch.
type BatchSummary struct {
	BulkTransactionID      string             `json:"bulk_transaction_id"`
	Status                 models.BatchStatus `json:"status"`
	TotalTransactions      int                `json:"total_transactions"`
	SuccessfulTransactions int                `json:"successful_transactions"`
	FailedTransactions     int                `json:"failed_transactions"`
	TimedOut               bool               `json:"timed_out"`
}

// BatchPage is one page of past batches.
type BatchPage struct {
	BulkTransactions []models.BulkTransactionBatch `json:"bulk_transactions"`
	Total            int                           `json:"total"`
	Page             int                           `json:"page"`
	Limit            int                           `json:"limit"`
	TotalPages       int                           `json:"total_pages"`
}

// NewTransfer is the request body for validating a one-off transfer.
type NewTransfer struct {
	Mode        models.PaymentMode   `json:"mode"`
	Mno         *models.MnoPayout    `json:"mno,omitempty"`
	Bank        *models.BankPayout   `json:"bank,omitempty"`
	Wallet      *models.WalletPayout `json:"wallet,omitempty"`
	Amount      decimal.Decimal      `json:"amount"`
	Currency    string               `json:"currency"`
	Description string               `json:"description,omitempty"`
}

// TransferPreview is the frozen confirmation view shown before Confirm.
type TransferPreview struct {
	State       string          `json:"state"`
	AccountName string          `json:"account_name,omitempty"`
	Recipient   string          `json:"recipient,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency,omitempty"`
	Message     string          `json:"message,omitempty"`
}

// TransferResult is the outcome of an executed transfer.
type TransferResult struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	TxnReference string `json:"txn_reference,omitempty"`
}

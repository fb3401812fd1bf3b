package processor

import (
	"context"

	"github.com/dayo/merchant-bulk-payments/pkg/models"
	"github.com/shopspring/decimal"
)

// Client is the contract this service consumes from the remote payment
// processor. The processor is the sole source of truth for bulk transaction
// handles and for terminal status determination.
type Client interface {
	// ValidateRecipients pre-flights a list of payment items. A transport or
	// service error fails the whole call; per-item validity is reported inside
	// a successful response.
	ValidateRecipients(ctx context.Context, items []models.PaymentItem) (*models.ValidationSummary, error)

	// SubmitBulk submits a batch of payment items and synchronously returns
	// the created batch aggregate, including its opaque handle.
	SubmitBulk(ctx context.Context, req *SubmitBulkRequest) (*models.BulkTransactionBatch, error)

	// GetBulkStatus re-fetches the batch aggregate for a handle.
	GetBulkStatus(ctx context.Context, bulkTransactionID string) (*models.BulkTransactionBatch, error)

	// ListBulk pages through the caller's past batches.
	ListBulk(ctx context.Context, req *ListBulkRequest) (*ListBulkResponse, error)

	// ValidateSingle pre-flights one instruction and resolves the recipient's
	// display name.
	ValidateSingle(ctx context.Context, req *SingleValidationRequest) (*SingleValidationResponse, error)

	// ExecuteSingle executes a one-off transfer from a frozen confirmation
	// snapshot.
	ExecuteSingle(ctx context.Context, snap *TransferSnapshot) (*SingleTransferResponse, error)
}

// SubmitBulkRequest is the batch submission payload.
type SubmitBulkRequest struct {
	UserID             string               `json:"user_id"`
	Transactions       []models.PaymentItem `json:"transactions"`
	Description        string               `json:"description,omitempty"`
	Reference          string               `json:"reference"`
	ProcessInParallel  bool                 `json:"process_in_parallel"`
	StopOnFirstFailure bool                 `json:"stop_on_first_failure"`
}

// ListBulkRequest pages through submitted batches for a user.
type ListBulkRequest struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	UserID string `json:"user_id"`
}

// ListBulkResponse is one page of batch aggregates.
type ListBulkResponse struct {
	BulkTransactions []models.BulkTransactionBatch `json:"bulk_transactions"`
	Total            int                           `json:"total"`
	Page             int                           `json:"page"`
	Limit            int                           `json:"limit"`
	TotalPages       int                           `json:"total_pages"`
}

// SingleValidationRequest pre-flights a one-off instruction. Only the payload
// variant matching Mode is set.
type SingleValidationRequest struct {
	Mode   models.PaymentMode   `json:"mode"`
	Mno    *models.MnoPayout    `json:"mno,omitempty"`
	Bank   *models.BankPayout   `json:"bank,omitempty"`
	Wallet *models.WalletPayout `json:"wallet,omitempty"`
	Amount decimal.Decimal      `json:"amount"`
}

// SingleValidationResponse is the processor's answer to a single validation.
type SingleValidationResponse struct {
	Status       string `json:"status"`
	AccountName  string `json:"account_name,omitempty"`
	Name         string `json:"name,omitempty"`
	TxnReference string `json:"txn_reference,omitempty"`
	Message      string `json:"message,omitempty"`
}

// ResolvedName returns whichever display-name field the processor populated.
func (r *SingleValidationResponse) ResolvedName() string {
	if r.AccountName != "" {
		return r.AccountName
	}
	return r.Name
}

// TransferSnapshot is the frozen confirmation snapshot a single transfer is
// executed against. It is captured at validation time and never rebuilt from
// live form state.
type TransferSnapshot struct {
	Mode        models.PaymentMode   `json:"mode"`
	Mno         *models.MnoPayout    `json:"mno,omitempty"`
	Bank        *models.BankPayout   `json:"bank,omitempty"`
	Wallet      *models.WalletPayout `json:"wallet,omitempty"`
	Amount      decimal.Decimal      `json:"amount"`
	Currency    string               `json:"currency"`
	AccountName string               `json:"account_name,omitempty"`
	Reference   string               `json:"reference"`
	Description string               `json:"description,omitempty"`
}

// SingleTransferResponse is the processor's answer to an executed transfer.
type SingleTransferResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	TxnReference string `json:"txn_reference,omitempty"`
}

package mapping

import (
	"github.com/dayo/merchant-bulk-payments/pkg/api"
	"github.com/dayo/merchant-bulk-payments/pkg/models"
	"github.com/dayo/merchant-bulk-payments/pkg/notify"
	"github.com/dayo/merchant-bulk-payments/pkg/orchestrator"
	"github.com/dayo/merchant-bulk-payments/pkg/processor"
)

// ToDomainNewItem converts an API NewPaymentItem to a domain PaymentItem.
// Lifecycle fields are owned by the queue and left zeroed here.
func ToDomainNewItem(in *api.NewPaymentItem) models.PaymentItem {
	return models.PaymentItem{
		ItemID:      in.ItemID,
		Mode:        in.Mode,
		Mno:         in.Mno,
		Bank:        in.Bank,
		Wallet:      in.Wallet,
		Amount:      in.Amount,
		Currency:    in.Currency,
		Description: in.Description,
	}
}

// ToApiItem converts a domain PaymentItem to its API representation.
func ToApiItem(item *models.PaymentItem) api.PaymentItem {
	return api.PaymentItem{
		ItemID:      item.ItemID,
		Mode:        item.Mode,
		Mno:         item.Mno,
		Bank:        item.Bank,
		Wallet:      item.Wallet,
		Amount:      item.Amount,
		Currency:    item.Currency,
		Description: item.Description,
		AccountName: item.AccountName,
		Status:      item.Status,
		Validated:   item.Validated,
		Error:       item.Error,
	}
}

// ToApiItems converts a slice of domain items.
func ToApiItems(items []models.PaymentItem) []api.PaymentItem {
	out := make([]api.PaymentItem, len(items))
	for i := range items {
		out[i] = ToApiItem(&items[i])
	}
	return out
}

// ToApiSummary converts a final batch summary.
func ToApiSummary(s *notify.BatchSummary) *api.BatchSummary {
	if s == nil {
		return nil
	}
	return &api.BatchSummary{
		BulkTransactionID:      s.BulkTransactionID,
		Status:                 s.Status,
		TotalTransactions:      s.TotalTransactions,
		SuccessfulTransactions: s.SuccessfulTransactions,
		FailedTransactions:     s.FailedTransactions,
		TimedOut:               s.TimedOut,
	}
}

// ToApiProgress assembles the live tracking view.
func ToApiProgress(state orchestrator.PollerState, handle string, progress orchestrator.Progress, items []models.PaymentItem, summary *notify.BatchSummary) api.BulkProgress {
	return api.BulkProgress{
		State:             string(state),
		BulkTransactionID: handle,
		Total:             progress.Total,
		Successful:        progress.Successful,
		Failed:            progress.Failed,
		Pending:           progress.Pending,
		Percentage:        progress.Percentage,
		Items:             ToApiItems(items),
		Summary:           ToApiSummary(summary),
	}
}

// ToApiBatchPage converts a processor list page.
func ToApiBatchPage(page *processor.ListBulkResponse) api.BatchPage {
	return api.BatchPage{
		BulkTransactions: page.BulkTransactions,
		Total:            page.Total,
		Page:             page.Page,
		Limit:            page.Limit,
		TotalPages:       page.TotalPages,
	}
}

// ToValidationRequest converts an API NewTransfer to a processor validation
// request.
func ToValidationRequest(in *api.NewTransfer) *processor.SingleValidationRequest {
	return &processor.SingleValidationRequest{
		Mode:   in.Mode,
		Mno:    in.Mno,
		Bank:   in.Bank,
		Wallet: in.Wallet,
		Amount: in.Amount,
	}
}

// ToApiPreview renders the frozen snapshot for display.
func ToApiPreview(state orchestrator.FlowState, snap *processor.TransferSnapshot, message string) api.TransferPreview {
	out := api.TransferPreview{State: string(state), Message: message}
	if snap == nil {
		return out
	}
	out.AccountName = snap.AccountName
	out.Reference = snap.Reference
	out.Amount = snap.Amount
	out.Currency = snap.Currency

	item := models.PaymentItem{Mode: snap.Mode, Mno: snap.Mno, Bank: snap.Bank, Wallet: snap.Wallet}
	out.Recipient = item.Recipient()
	return out
}

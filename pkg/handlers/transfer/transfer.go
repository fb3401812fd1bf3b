package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dayo/merchant-bulk-payments/pkg/api"
	"github.com/dayo/merchant-bulk-payments/pkg/mapping"
	"github.com/dayo/merchant-bulk-payments/pkg/orchestrator"
)

// TransferHandler exposes the two-phase validate-then-confirm flow for
// one-off transfers.
type TransferHandler struct {
	Flow *orchestrator.ConfirmFlow
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(flow *orchestrator.ConfirmFlow) *TransferHandler {
	return &TransferHandler{Flow: flow}
}

// GetState returns the flow state and, when awaiting confirmation, the frozen
// preview.
func (h *TransferHandler) GetState(w http.ResponseWriter, r *http.Request) {
	snap, _ := h.Flow.Snapshot()
	preview := mapping.ToApiPreview(h.Flow.State(), snap, h.Flow.Message())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(preview); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ValidateTransfer pre-flights one instruction and freezes the confirmation
// snapshot.
func (h *TransferHandler) ValidateTransfer(w http.ResponseWriter, r *http.Request) {
	var req api.NewTransfer
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	snap, err := h.Flow.Validate(r.Context(), mapping.ToValidationRequest(&req), req.Currency, req.Description)
	if err != nil {
		if errors.Is(err, orchestrator.ErrInvalidFlowState) {
			http.Error(w, "A transfer is already in progress", http.StatusConflict)
		} else {
			http.Error(w, fmt.Sprintf("Validation failed: %v", err), http.StatusUnprocessableEntity)
		}
		return
	}

	preview := mapping.ToApiPreview(h.Flow.State(), snap, "")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(preview); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ConfirmTransfer executes the transfer against the frozen snapshot.
func (h *TransferHandler) ConfirmTransfer(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Flow.Confirm(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, orchestrator.ErrInvalidFlowState):
			http.Error(w, "No validated transfer awaiting confirmation", http.StatusConflict)
		case errors.Is(err, orchestrator.ErrConfirmationRejected):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, fmt.Sprintf("Failed to confirm transfer: %v", err), http.StatusBadGateway)
		}
		return
	}

	result := api.TransferResult{
		Status:       resp.Status,
		Message:      resp.Message,
		TxnReference: resp.TxnReference,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// CancelTransfer discards the frozen snapshot without any backend call.
func (h *TransferHandler) CancelTransfer(w http.ResponseWriter, r *http.Request) {
	if err := h.Flow.Cancel(); err != nil {
		http.Error(w, "No transfer awaiting confirmation", http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

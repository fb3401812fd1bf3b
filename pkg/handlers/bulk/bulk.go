package bulk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dayo/merchant-bulk-payments/pkg/api"
	"github.com/dayo/merchant-bulk-payments/pkg/journal"
	"github.com/dayo/merchant-bulk-payments/pkg/mapping"
	"github.com/dayo/merchant-bulk-payments/pkg/orchestrator"
	"github.com/dayo/merchant-bulk-payments/pkg/processor"
	"github.com/dayo/merchant-bulk-payments/pkg/queue"
)

// BulkHandler exposes batch submission, live progress and batch history.
type BulkHandler struct {
	Coordinator *orchestrator.Coordinator
	Poller      *orchestrator.StatusPoller
	Queue       *queue.ItemQueue
	Backend     processor.Client
	Journal     journal.Store
	UserID      string
}

// NewBulkHandler creates a new BulkHandler.
func NewBulkHandler(coordinator *orchestrator.Coordinator, poller *orchestrator.StatusPoller, q *queue.ItemQueue, backend processor.Client, j journal.Store, userID string) *BulkHandler {
	return &BulkHandler{
		Coordinator: coordinator,
		Poller:      poller,
		Queue:       q,
		Backend:     backend,
		Journal:     j,
		UserID:      userID,
	}
}

// active reports whether a polling loop currently owns a handle.
func (h *BulkHandler) active() bool {
	state := h.Poller.State()
	return state == orchestrator.PollerScheduled || state == orchestrator.PollerPolling
}

// SubmitBatch freezes the queue into one batch, submits it and starts the
// tracking loop for the returned handle.
func (h *BulkHandler) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	var req api.SubmitBulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if h.active() {
		http.Error(w, "A batch is already being tracked", http.StatusConflict)
		return
	}

	bulkID, err := h.Coordinator.Submit(r.Context(), orchestrator.SubmitOptions{
		Description:        req.Description,
		Reference:          req.Reference,
		ProcessInParallel:  req.ProcessInParallel,
		StopOnFirstFailure: req.StopOnFirstFailure,
	})
	if err != nil {
		switch {
		case errors.Is(err, orchestrator.ErrEmptyQueue):
			http.Error(w, "No items queued for submission", http.StatusUnprocessableEntity)
		case errors.Is(err, orchestrator.ErrItemAlreadyPaid):
			http.Error(w, fmt.Sprintf("Failed to submit batch: %v", err), http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to submit batch: %v", err), http.StatusBadGateway)
		}
		return
	}

	// The polling loop outlives the request.
	if err := h.Poller.Track(context.Background(), bulkID); err != nil {
		http.Error(w, fmt.Sprintf("Batch %s submitted but tracking failed to start: %v", bulkID, err), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(api.SubmitBulkResponse{BulkTransactionID: bulkID}); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetProgress returns the live tracking view: poller state, aggregate
// progress and the per-item statuses merged so far.
func (h *BulkHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	summary, _ := h.Poller.Summary()
	view := mapping.ToApiProgress(
		h.Poller.State(),
		h.Poller.Handle(),
		h.Coordinator.Progress.Snapshot(),
		h.Queue.Items(),
		summary,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(view); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetBatch fetches a fresh snapshot of one batch straight from the processor.
func (h *BulkHandler) GetBatch(w http.ResponseWriter, r *http.Request, bulkTransactionID string) {
	batch, err := h.Backend.GetBulkStatus(r.Context(), bulkTransactionID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve batch: %v", err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(batch); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetJournal returns the durable journal entry for a handle, including
// batches submitted in earlier sessions.
func (h *BulkHandler) GetJournal(w http.ResponseWriter, r *http.Request, bulkTransactionID string) {
	rec, err := h.Journal.Get(r.Context(), bulkTransactionID)
	if err != nil {
		if errors.Is(err, journal.ErrRecordNotFound) {
			http.Error(w, fmt.Sprintf("No journal entry for batch %s", bulkTransactionID), http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to read journal: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(rec); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ResumeTracking re-attaches the polling loop to a previously submitted
// handle, e.g. after a client timeout left the batch unresolved.
func (h *BulkHandler) ResumeTracking(w http.ResponseWriter, r *http.Request, bulkTransactionID string) {
	if err := h.Poller.Track(context.Background(), bulkTransactionID); err != nil {
		http.Error(w, fmt.Sprintf("Cannot resume tracking: %v", err), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// ListBatches pages through past batches via the processor.
func (h *BulkHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}

	result, err := h.Backend.ListBulk(r.Context(), &processor.ListBulkRequest{
		Page:   page,
		Limit:  limit,
		UserID: h.UserID,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list batches: %v", err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiBatchPage(result)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

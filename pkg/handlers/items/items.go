package items

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dayo/merchant-bulk-payments/pkg/api"
	"github.com/dayo/merchant-bulk-payments/pkg/mapping"
	"github.com/dayo/merchant-bulk-payments/pkg/orchestrator"
	"github.com/dayo/merchant-bulk-payments/pkg/queue"
)

// ItemsHandler exposes the pre-submission payment item queue.
type ItemsHandler struct {
	Queue     *queue.ItemQueue
	Validator *orchestrator.RecipientValidator
}

// NewItemsHandler creates a new ItemsHandler.
func NewItemsHandler(q *queue.ItemQueue, validator *orchestrator.RecipientValidator) *ItemsHandler {
	return &ItemsHandler{Queue: q, Validator: validator}
}

// ListItems returns the queued items in insertion order.
func (h *ItemsHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items := mapping.ToApiItems(h.Queue.Items())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(items); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// AddItem enqueues a new payment item.
func (h *ItemsHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var newItem api.NewPaymentItem
	if err := json.NewDecoder(r.Body).Decode(&newItem); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	item := mapping.ToDomainNewItem(&newItem)
	itemID, err := h.Queue.Add(item)
	if err != nil {
		if errors.Is(err, queue.ErrQueueSealed) {
			http.Error(w, "Batch already submitted; queue is read-only", http.StatusConflict)
		} else {
			http.Error(w, fmt.Sprintf("Failed to add item: %v", err), http.StatusBadRequest)
		}
		return
	}

	added, _ := h.Queue.Get(itemID)
	apiItem := mapping.ToApiItem(&added)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiItem); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// UpdateItem replaces an existing item's payload. The item id in the path
// wins over any id in the body.
func (h *ItemsHandler) UpdateItem(w http.ResponseWriter, r *http.Request, itemID string) {
	var newItem api.NewPaymentItem
	if err := json.NewDecoder(r.Body).Decode(&newItem); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	item := mapping.ToDomainNewItem(&newItem)
	item.ItemID = itemID
	if err := h.Queue.Update(item); err != nil {
		switch {
		case errors.Is(err, queue.ErrQueueSealed):
			http.Error(w, "Batch already submitted; queue is read-only", http.StatusConflict)
		case errors.Is(err, queue.ErrItemNotFound):
			http.Error(w, fmt.Sprintf("Item %s not found", itemID), http.StatusNotFound)
		default:
			http.Error(w, fmt.Sprintf("Failed to update item: %v", err), http.StatusInternalServerError)
		}
		return
	}

	updated, _ := h.Queue.Get(itemID)
	apiItem := mapping.ToApiItem(&updated)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiItem); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// RemoveItem deletes an item from the queue. Its id is never reissued.
func (h *ItemsHandler) RemoveItem(w http.ResponseWriter, r *http.Request, itemID string) {
	if err := h.Queue.Remove(itemID); err != nil {
		switch {
		case errors.Is(err, queue.ErrQueueSealed):
			http.Error(w, "Batch already submitted; queue is read-only", http.StatusConflict)
		case errors.Is(err, queue.ErrItemNotFound):
			http.Error(w, fmt.Sprintf("Item %s not found", itemID), http.StatusNotFound)
		default:
			http.Error(w, fmt.Sprintf("Failed to remove item: %v", err), http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ValidateItems pre-flights the whole queue with the payment processor and
// returns the validation summary. A transport failure leaves every item
// untouched.
func (h *ItemsHandler) ValidateItems(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Validator.Validate(r.Context())
	if err != nil {
		if errors.Is(err, orchestrator.ErrEmptyQueue) {
			http.Error(w, "No items to validate", http.StatusUnprocessableEntity)
		} else {
			http.Error(w, fmt.Sprintf("Validation failed: %v", err), http.StatusBadGateway)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

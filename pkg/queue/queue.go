package queue

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dayo/merchant-bulk-payments/pkg/models"
)

// ErrQueueSealed is returned when the item set is mutated after submission.
var ErrQueueSealed = errors.New("queue is sealed for an in-flight batch")

// ErrItemNotFound is returned when no item carries the given id.
var ErrItemNotFound = errors.New("item not found")

// ItemQueue is the single owned store of payment items for one batch under
// construction. All access is serialized by a mutex so that result merges are
// atomic with respect to readers: a reader sees either the pre-merge or the
// post-merge item set, never a partially merged one.
//
// Item ids are never reused within a queue, even after removal. They are the
// sole correlation key for merging backend results.
type ItemQueue struct {
	mu     sync.Mutex
	order  []string
	items  map[string]*models.PaymentItem
	seq    int
	sealed bool
}

// New creates an empty ItemQueue.
func New() *ItemQueue {
	return &ItemQueue{items: make(map[string]*models.PaymentItem)}
}

// nextItemID issues a queue-unique item id. Millisecond timestamp plus a
// monotonic sequence makes collisions within one session practically
// impossible.
func (q *ItemQueue) nextItemID() string {
	q.seq++
	return fmt.Sprintf("itm-%d-%d", time.Now().UnixMilli(), q.seq)
}

// Add enqueues a new item. An empty ItemID is assigned; a caller-supplied one
// must be unique. New items start Pending and unvalidated.
func (q *ItemQueue) Add(item models.PaymentItem) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.sealed {
		return "", ErrQueueSealed
	}
	if item.ItemID == "" {
		item.ItemID = q.nextItemID()
	} else if _, exists := q.items[item.ItemID]; exists {
		return "", fmt.Errorf("duplicate item id %s", item.ItemID)
	}
	item.Status = models.ItemPending
	item.Validated = false
	item.Error = ""

	q.items[item.ItemID] = &item
	q.order = append(q.order, item.ItemID)
	return item.ItemID, nil
}

// Update replaces the payload of an existing item before submission. The
// ItemID is immutable; editing resets validation state.
func (q *ItemQueue) Update(item models.PaymentItem) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.sealed {
		return ErrQueueSealed
	}
	existing, ok := q.items[item.ItemID]
	if !ok {
		return ErrItemNotFound
	}
	item.Status = models.ItemPending
	item.Validated = false
	item.Error = ""
	*existing = item
	return nil
}

// Remove deletes an item. Its id stays burned: the sequence counter never
// goes backwards, so the id cannot come back for a different instruction.
func (q *ItemQueue) Remove(itemID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.sealed {
		return ErrQueueSealed
	}
	if _, ok := q.items[itemID]; !ok {
		return ErrItemNotFound
	}
	delete(q.items, itemID)
	for i, id := range q.order {
		if id == itemID {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns a copy of one item.
func (q *ItemQueue) Get(itemID string) (models.PaymentItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	item, ok := q.items[itemID]
	if !ok {
		return models.PaymentItem{}, false
	}
	return *item, true
}

// Items returns copies of all items in insertion order.
func (q *ItemQueue) Items() []models.PaymentItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]models.PaymentItem, 0, len(q.order))
	for _, id := range q.order {
		out = append(out, *q.items[id])
	}
	return out
}

// Len returns the number of queued items.
func (q *ItemQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.order)
}

// Seal freezes the item set for submission. Mutating calls fail until Reset.
func (q *ItemQueue) Seal() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sealed = true
}

// Unseal re-opens the item set, e.g. after a submission attempt that produced
// no batch handle.
func (q *ItemQueue) Unseal() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sealed = false
}

// Sealed reports whether the queue is currently frozen.
func (q *ItemQueue) Sealed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.sealed
}

// CompleteBatch releases the queue once its batch reached a terminal status:
// items that were paid are removed so they can never be submitted again,
// failed items stay for editing and retry, and the queue unseals for the next
// batch.
func (q *ItemQueue) CompleteBatch() {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.order[:0]
	for _, id := range q.order {
		if q.items[id].Status == models.ItemSuccess {
			delete(q.items, id)
			continue
		}
		kept = append(kept, id)
	}
	q.order = kept
	q.sealed = false
}

// Reset drops all items and unseals the queue. The id sequence is not reset,
// so ids are never reused across batches in one session.
func (q *ItemQueue) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = make(map[string]*models.PaymentItem)
	q.order = nil
	q.sealed = false
}

// ApplyValidation applies per-item validation outcomes: every listed item is
// marked validated; valid items stay Pending and adopt the resolved account
// name, invalid ones become Failed with the reported error. Unknown ids are
// ignored. The whole merge happens under one lock acquisition.
func (q *ItemQueue) ApplyValidation(results []models.ValidationResult) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, res := range results {
		item, ok := q.items[res.ItemID]
		if !ok {
			continue
		}
		item.Validated = true
		if res.IsValid {
			item.Status = models.ItemPending
			item.Error = ""
			if res.AccountName != "" {
				item.AccountName = res.AccountName
			}
		} else {
			item.Status = models.ItemFailed
			item.Error = res.Error
		}
	}
}

// ApplyResults merges a batch snapshot's per-item results into the queue,
// strictly by item id. Result order is meaningless and may differ from
// submission order. The merge is a pure overwrite, so re-applying the same
// snapshot is a no-op.
func (q *ItemQueue) ApplyResults(results []models.ItemResult) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, res := range results {
		item, ok := q.items[res.ItemID]
		if !ok {
			continue
		}
		item.Status = res.Status
		item.Error = res.ErrorMessage
	}
}

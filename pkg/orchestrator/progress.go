package orchestrator

import (
	"math"
	"sync"

	"github.com/dayo/merchant-bulk-payments/pkg/models"
)

// Progress is a point-in-time view of batch completion.
type Progress struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Pending    int `json:"pending"`
	Percentage int `json:"percentage"`
}

// ProgressAggregator derives completion statistics from batch snapshots.
// Percentage is monotonically non-decreasing across observations of one
// handle and always within [0,100], even if the backend briefly reports
// regressed counts. A snapshot for a different handle re-baselines the
// aggregate instead of inheriting the previous batch's floor.
type ProgressAggregator struct {
	mu     sync.Mutex
	handle string
	cur    Progress
}

// NewProgressAggregator creates an empty aggregator.
func NewProgressAggregator() *ProgressAggregator {
	return &ProgressAggregator{}
}

// Reset re-initializes progress for a freshly submitted batch of n items:
// everything pending, zero percent.
func (p *ProgressAggregator) Reset(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handle = ""
	p.cur = Progress{Total: n, Pending: n}
}

// Observe folds one batch snapshot into the aggregate.
func (p *ProgressAggregator) Observe(batch *models.BulkTransactionBatch) Progress {
	p.mu.Lock()
	defer p.mu.Unlock()

	if batch.BulkTransactionID != p.handle {
		p.handle = batch.BulkTransactionID
		p.cur = Progress{}
	}

	p.cur.Total = batch.TotalTransactions
	p.cur.Successful = batch.SuccessfulTransactions
	p.cur.Failed = batch.FailedTransactions
	p.cur.Pending = batch.PendingTransactions

	pct := 0
	if batch.TotalTransactions > 0 {
		settled := batch.SuccessfulTransactions + batch.FailedTransactions
		pct = int(math.Round(100 * float64(settled) / float64(batch.TotalTransactions)))
	}
	if pct > 100 {
		pct = 100
	}
	if pct > p.cur.Percentage {
		p.cur.Percentage = pct
	}
	return p.cur
}

// Snapshot returns the current progress.
func (p *ProgressAggregator) Snapshot() Progress {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cur
}

package orchestrator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	journal_mocks "github.com/dayo/merchant-bulk-payments/pkg/journal/mocks"
	"github.com/dayo/merchant-bulk-payments/pkg/models"
	"github.com/dayo/merchant-bulk-payments/pkg/notify"
	processor_mocks "github.com/dayo/merchant-bulk-payments/pkg/processor/mocks"
	"github.com/dayo/merchant-bulk-payments/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// recordingNotifier captures every published summary.
type recordingNotifier struct {
	mu        sync.Mutex
	published []notify.BatchSummary
}

func (n *recordingNotifier) PublishBatchSummary(ctx context.Context, summary notify.BatchSummary) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.published = append(n.published, summary)
	return nil
}

func (n *recordingNotifier) summaries() []notify.BatchSummary {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.BatchSummary(nil), n.published...)
}

func fastPollConfig(maxAttempts int) PollConfig {
	return PollConfig{
		InitialDelay: time.Millisecond,
		Interval:     time.Millisecond,
		MaxAttempts:  maxAttempts,
	}
}

func waitForPoller(t *testing.T, p *StatusPoller) {
	t.Helper()
	select {
	case <-p.Wait():
	case <-time.After(5 * time.Second):
		t.Fatal("poller did not finish in time")
	}
}

func TestTrack_RunsToPartialSuccess(t *testing.T) {
	// 1. Setup: three items, one per mode.
	mockBackend := new(processor_mocks.Client)
	mockJournal := new(journal_mocks.Store)
	notifier := &recordingNotifier{}
	q := queue.New()
	_, _ = q.Add(queuedItem("A", models.ModeWalletToMno))
	_, _ = q.Add(queuedItem("B", models.ModeWalletToBank))
	_, _ = q.Add(queuedItem("C", models.ModeWalletToWallet))
	q.Seal()
	progress := NewProgressAggregator()
	progress.Reset(3)
	poller := NewStatusPoller(mockBackend, q, progress, mockJournal, notifier, fastPollConfig(60), testLogger())

	// 2. Mock expectations: Processing at tick 1, PartialSuccess at tick 2.
	tick1 := &models.BulkTransactionBatch{
		BulkTransactionID:      "bulk-123",
		Status:                 models.BatchProcessing,
		TotalTransactions:      3,
		SuccessfulTransactions: 1,
		PendingTransactions:    2,
		TransactionResults: []models.ItemResult{
			{ItemID: "A", Status: models.ItemSuccess},
		},
	}
	tick2 := &models.BulkTransactionBatch{
		BulkTransactionID:      "bulk-123",
		Status:                 models.BatchPartialSuccess,
		TotalTransactions:      3,
		SuccessfulTransactions: 2,
		FailedTransactions:     1,
		TransactionResults: []models.ItemResult{
			{ItemID: "C", Status: models.ItemFailed, ErrorMessage: "recipient blocked"},
			{ItemID: "A", Status: models.ItemSuccess},
			{ItemID: "B", Status: models.ItemSuccess},
		},
	}
	mockBackend.On("GetBulkStatus", mock.Anything, "bulk-123").Return(tick1, nil).Once()
	mockBackend.On("GetBulkStatus", mock.Anything, "bulk-123").Return(tick2, nil).Once()
	mockJournal.On("Finalize", mock.Anything, "bulk-123", models.JournalCompleted, tick2).Return(nil).Once()

	// 3. Execute
	assert.NoError(t, poller.Track(context.Background(), "bulk-123"))
	waitForPoller(t, poller)

	// 4. Assert: polling stopped at the terminal snapshot.
	assert.Equal(t, PollerDone, poller.State())
	assert.Empty(t, poller.Handle())
	assert.Equal(t, 100, progress.Snapshot().Percentage)

	// The queue is released: paid items are purged, the failed one stays.
	assert.False(t, q.Sealed())
	_, ok := q.Get("A")
	assert.False(t, ok)
	_, ok = q.Get("B")
	assert.False(t, ok)
	c, _ := q.Get("C")
	assert.Equal(t, models.ItemFailed, c.Status)
	assert.Equal(t, "recipient blocked", c.Error)

	published := notifier.summaries()
	assert.Len(t, published, 1)
	assert.Equal(t, models.BatchPartialSuccess, published[0].Status)
	assert.False(t, published[0].TimedOut)

	summary, ok := poller.Summary()
	assert.True(t, ok)
	assert.Equal(t, 2, summary.SuccessfulTransactions)
	assert.Equal(t, 1, summary.FailedTransactions)

	mockBackend.AssertExpectations(t)
	mockJournal.AssertExpectations(t)
}

func TestTrack_TransientFailureDoesNotTerminate(t *testing.T) {
	mockBackend := new(processor_mocks.Client)
	mockJournal := new(journal_mocks.Store)
	notifier := &recordingNotifier{}
	q := queue.New()
	_, _ = q.Add(queuedItem("A", models.ModeWalletToMno))
	progress := NewProgressAggregator()
	progress.Reset(1)
	poller := NewStatusPoller(mockBackend, q, progress, mockJournal, notifier, fastPollConfig(60), testLogger())

	terminal := &models.BulkTransactionBatch{
		BulkTransactionID:      "bulk-9",
		Status:                 models.BatchSuccess,
		TotalTransactions:      1,
		SuccessfulTransactions: 1,
		TransactionResults:     []models.ItemResult{{ItemID: "A", Status: models.ItemSuccess}},
	}
	mockBackend.On("GetBulkStatus", mock.Anything, "bulk-9").Return(nil, errors.New("gateway timeout")).Once()
	mockBackend.On("GetBulkStatus", mock.Anything, "bulk-9").Return(terminal, nil).Once()
	mockJournal.On("Finalize", mock.Anything, "bulk-9", models.JournalCompleted, terminal).Return(nil).Once()

	assert.NoError(t, poller.Track(context.Background(), "bulk-9"))
	waitForPoller(t, poller)

	assert.Equal(t, PollerDone, poller.State())
	assert.Len(t, notifier.summaries(), 1)
	mockBackend.AssertExpectations(t)
}

func TestTrack_TimesOut(t *testing.T) {
	// Exhausting the attempt budget without a terminal status ends in
	// TimedOut with exactly one notification; items keep their last status.
	mockBackend := new(processor_mocks.Client)
	mockJournal := new(journal_mocks.Store)
	notifier := &recordingNotifier{}
	q := queue.New()
	_, _ = q.Add(queuedItem("A", models.ModeWalletToBank))
	q.Seal()
	progress := NewProgressAggregator()
	progress.Reset(1)
	poller := NewStatusPoller(mockBackend, q, progress, mockJournal, notifier, fastPollConfig(3), testLogger())

	processing := &models.BulkTransactionBatch{
		BulkTransactionID:   "bulk-5",
		Status:              models.BatchProcessing,
		TotalTransactions:   1,
		PendingTransactions: 1,
	}
	mockBackend.On("GetBulkStatus", mock.Anything, "bulk-5").Return(processing, nil).Times(3)
	mockJournal.On("Finalize", mock.Anything, "bulk-5", models.JournalTimedOut, mock.Anything).Return(nil).Once()

	assert.NoError(t, poller.Track(context.Background(), "bulk-5"))
	waitForPoller(t, poller)

	assert.Equal(t, PollerTimedOut, poller.State())
	assert.Empty(t, poller.Handle())

	// Items are not marked failed on timeout, and the queue stays sealed:
	// the batch may still be paying out remotely.
	a, _ := q.Get("A")
	assert.Equal(t, models.ItemPending, a.Status)
	assert.True(t, q.Sealed())

	published := notifier.summaries()
	assert.Len(t, published, 1)
	assert.True(t, published[0].TimedOut)

	mockBackend.AssertExpectations(t)
	mockJournal.AssertExpectations(t)
}

func TestTrack_TransientFailuresExhaustBudget(t *testing.T) {
	mockBackend := new(processor_mocks.Client)
	notifier := &recordingNotifier{}
	q := queue.New()
	progress := NewProgressAggregator()
	poller := NewStatusPoller(mockBackend, q, progress, nil, notifier, fastPollConfig(2), testLogger())

	mockBackend.On("GetBulkStatus", mock.Anything, "bulk-7").Return(nil, errors.New("connection refused")).Times(2)

	assert.NoError(t, poller.Track(context.Background(), "bulk-7"))
	waitForPoller(t, poller)

	assert.Equal(t, PollerTimedOut, poller.State())
	assert.Len(t, notifier.summaries(), 1)
	mockBackend.AssertExpectations(t)
}

func TestTrack_RefusesOverlappingLoops(t *testing.T) {
	mockBackend := new(processor_mocks.Client)
	poller := NewStatusPoller(mockBackend, queue.New(), NewProgressAggregator(), nil, &notify.NoOpNotifier{}, PollConfig{
		InitialDelay: time.Minute,
		Interval:     time.Minute,
		MaxAttempts:  1,
	}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	assert.NoError(t, poller.Track(ctx, "bulk-1"))
	assert.ErrorIs(t, poller.Track(ctx, "bulk-1"), ErrPollerActive)
	assert.ErrorIs(t, poller.Track(ctx, "bulk-2"), ErrPollerActive)

	cancel()
	waitForPoller(t, poller)

	// After the loop stops, tracking can be resumed.
	assert.Equal(t, PollerIdle, poller.State())
}

func TestTrack_ResumedHandleRebaselinesProgress(t *testing.T) {
	// 1. Setup: the first batch runs to completion at 100%.
	mockBackend := new(processor_mocks.Client)
	q := queue.New()
	progress := NewProgressAggregator()
	poller := NewStatusPoller(mockBackend, q, progress, nil, &recordingNotifier{}, fastPollConfig(60), testLogger())

	done1 := &models.BulkTransactionBatch{
		BulkTransactionID:      "bulk-1",
		Status:                 models.BatchSuccess,
		TotalTransactions:      2,
		SuccessfulTransactions: 2,
	}
	mockBackend.On("GetBulkStatus", mock.Anything, "bulk-1").Return(done1, nil).Once()
	progress.Reset(2)
	assert.NoError(t, poller.Track(context.Background(), "bulk-1"))
	waitForPoller(t, poller)
	assert.Equal(t, 100, progress.Snapshot().Percentage)

	// 2. Resume a different handle that has settled nothing yet.
	inflight2 := &models.BulkTransactionBatch{
		BulkTransactionID:   "bulk-2",
		Status:              models.BatchProcessing,
		TotalTransactions:   4,
		PendingTransactions: 4,
	}
	mockBackend.On("GetBulkStatus", mock.Anything, "bulk-2").Return(inflight2, nil)
	ctx, cancel := context.WithCancel(context.Background())
	assert.NoError(t, poller.Track(ctx, "bulk-2"))

	// 3. Wait for the first tick of the resumed handle.
	deadline := time.Now().Add(5 * time.Second)
	for progress.Snapshot().Total != 4 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	// 4. Assert: the old batch's percentage does not floor the new reading.
	got := progress.Snapshot()
	assert.Equal(t, 4, got.Total)
	assert.Equal(t, 4, got.Pending)
	assert.Equal(t, 0, got.Percentage)

	cancel()
	waitForPoller(t, poller)
}

func TestTrack_CompletedBatchCannotBeResubmitted(t *testing.T) {
	// 1. Setup: one item submitted and tracked to full success.
	mockBackend := new(processor_mocks.Client)
	notifier := &recordingNotifier{}
	q := queue.New()
	_, _ = q.Add(queuedItem("A", models.ModeWalletToMno))
	progress := NewProgressAggregator()
	coordinator := NewCoordinator(mockBackend, q, nil, progress, "merchant-1", testLogger())
	poller := NewStatusPoller(mockBackend, q, progress, nil, notifier, fastPollConfig(60), testLogger())

	// 2. Mock expectations
	created := &models.BulkTransactionBatch{
		BulkTransactionID:   "bulk-11",
		Status:              models.BatchProcessing,
		TotalTransactions:   1,
		PendingTransactions: 1,
	}
	terminal := &models.BulkTransactionBatch{
		BulkTransactionID:      "bulk-11",
		Status:                 models.BatchSuccess,
		TotalTransactions:      1,
		SuccessfulTransactions: 1,
		TransactionResults:     []models.ItemResult{{ItemID: "A", Status: models.ItemSuccess}},
	}
	mockBackend.On("SubmitBulk", mock.Anything, mock.Anything).Return(created, nil).Once()
	mockBackend.On("GetBulkStatus", mock.Anything, "bulk-11").Return(terminal, nil).Once()

	// 3. Execute
	bulkID, err := coordinator.Submit(context.Background(), SubmitOptions{})
	assert.NoError(t, err)
	assert.NoError(t, poller.Track(context.Background(), bulkID))
	waitForPoller(t, poller)

	// 4. Assert: the paid item is purged, so nothing can be sent twice.
	assert.False(t, q.Sealed())
	assert.Equal(t, 0, q.Len())
	_, err = coordinator.Submit(context.Background(), SubmitOptions{})
	assert.ErrorIs(t, err, ErrEmptyQueue)
	mockBackend.AssertNumberOfCalls(t, "SubmitBulk", 1)
}

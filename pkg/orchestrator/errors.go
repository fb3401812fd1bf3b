package orchestrator

import "errors"

// ErrEmptyQueue is returned when submission or validation is attempted with no
// queued items.
var ErrEmptyQueue = errors.New("no payment items queued")

// ErrSubmissionFailed wraps any failure to obtain a batch handle. The queue is
// left unchanged so the same item set can be retried.
var ErrSubmissionFailed = errors.New("bulk submission failed")

// ErrItemAlreadyPaid is returned when submission would re-send an item that
// already succeeded in an earlier batch.
var ErrItemAlreadyPaid = errors.New("item already paid in a previous batch")

// ErrPollerActive is returned when tracking is started while another polling
// loop is still running. At most one loop may be active at a time.
var ErrPollerActive = errors.New("a polling loop is already active")

// ErrPollTimeout means the attempt budget was exhausted without observing a
// terminal batch status. Items keep their last known status; the batch may
// still be processing remotely and should be checked manually or resumed.
var ErrPollTimeout = errors.New("poll timeout - check batch status manually")

// ErrInvalidFlowState is returned when a confirm-flow transition is requested
// from a state that does not allow it.
var ErrInvalidFlowState = errors.New("operation not allowed in current flow state")

// ErrConfirmationRejected wraps a processor rejection of the confirm step.
var ErrConfirmationRejected = errors.New("transfer confirmation rejected")

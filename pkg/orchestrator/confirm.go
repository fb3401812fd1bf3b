package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dayo/merchant-bulk-payments/pkg/processor"
	"github.com/google/uuid"
)

// FlowState is the state of the single-transaction confirm flow.
type FlowState string

const (
	FlowFormEntry            FlowState = "FORM_ENTRY"
	FlowValidating           FlowState = "VALIDATING"
	FlowAwaitingConfirmation FlowState = "AWAITING_CONFIRMATION"
	FlowConfirming           FlowState = "CONFIRMING"
	FlowCompleted            FlowState = "COMPLETED"
	FlowFailed               FlowState = "FAILED"
)

// ConfirmFlow is the two-phase validate-then-confirm state machine for one-off
// transfers. A transfer is only ever executed against the snapshot frozen at
// the preceding successful validation, so amount and recipient cannot drift
// between the two phases.
type ConfirmFlow struct {
	Backend processor.Client
	Logger  *slog.Logger

	mu       sync.Mutex
	state    FlowState
	snapshot *processor.TransferSnapshot
	message  string
}

// NewConfirmFlow creates a flow at the form-entry state.
func NewConfirmFlow(backend processor.Client, logger *slog.Logger) *ConfirmFlow {
	return &ConfirmFlow{Backend: backend, Logger: logger, state: FlowFormEntry}
}

// State returns the current flow state.
func (f *ConfirmFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Message returns the last error or status message.
func (f *ConfirmFlow) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Snapshot returns a copy of the frozen confirmation snapshot, if any.
func (f *ConfirmFlow) Snapshot() (*processor.TransferSnapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.snapshot == nil {
		return nil, false
	}
	s := *f.snapshot
	return &s, true
}

// Validate pre-flights one instruction with the processor. On success the
// flow freezes a snapshot of the validated fields and moves to
// AwaitingConfirmation; the snapshot is the only data Confirm may execute
// against. A rejection or transport error returns the flow to FormEntry.
func (f *ConfirmFlow) Validate(ctx context.Context, req *processor.SingleValidationRequest, currency, description string) (*processor.TransferSnapshot, error) {
	f.mu.Lock()
	switch f.state {
	case FlowFormEntry, FlowCompleted, FlowFailed:
		// A new instruction restarts the flow.
	default:
		f.mu.Unlock()
		return nil, ErrInvalidFlowState
	}
	f.state = FlowValidating
	f.snapshot = nil
	f.message = ""
	f.mu.Unlock()

	resp, err := f.Backend.ValidateSingle(ctx, req)
	if err != nil {
		f.fail(FlowFormEntry, err.Error())
		return nil, fmt.Errorf("transfer validation failed: %w", err)
	}
	if !strings.EqualFold(resp.Status, "success") {
		f.fail(FlowFormEntry, resp.Message)
		return nil, fmt.Errorf("transfer validation rejected: %s", resp.Message)
	}

	reference := resp.TxnReference
	if reference == "" {
		reference = "txn-" + uuid.New().String()
	}

	snap := &processor.TransferSnapshot{
		Mode:        req.Mode,
		Mno:         req.Mno,
		Bank:        req.Bank,
		Wallet:      req.Wallet,
		Amount:      req.Amount,
		Currency:    currency,
		AccountName: resp.ResolvedName(),
		Reference:   reference,
		Description: description,
	}

	f.mu.Lock()
	f.state = FlowAwaitingConfirmation
	f.snapshot = snap
	f.mu.Unlock()

	f.Logger.Info("transfer validated",
		slog.String("reference", reference),
		slog.String("account_name", snap.AccountName),
	)
	s := *snap
	return &s, nil
}

// Confirm executes the transfer using the frozen snapshot. On processor
// rejection the flow moves to Failed with the message surfaced verbatim; it is
// never silently retried.
func (f *ConfirmFlow) Confirm(ctx context.Context) (*processor.SingleTransferResponse, error) {
	f.mu.Lock()
	if f.state != FlowAwaitingConfirmation || f.snapshot == nil {
		f.mu.Unlock()
		return nil, ErrInvalidFlowState
	}
	f.state = FlowConfirming
	snap := *f.snapshot
	f.mu.Unlock()

	resp, err := f.Backend.ExecuteSingle(ctx, &snap)
	if err != nil {
		f.fail(FlowFailed, err.Error())
		return nil, fmt.Errorf("%w: %v", ErrConfirmationRejected, err)
	}
	if !strings.EqualFold(resp.Status, "success") {
		f.fail(FlowFailed, resp.Message)
		return nil, fmt.Errorf("%w: %s", ErrConfirmationRejected, resp.Message)
	}

	f.mu.Lock()
	f.state = FlowCompleted
	f.snapshot = nil
	f.message = resp.Message
	f.mu.Unlock()

	f.Logger.Info("transfer completed", slog.String("txn_reference", resp.TxnReference))
	return resp, nil
}

// Cancel discards the frozen snapshot and returns to form entry. No backend
// call is made.
func (f *ConfirmFlow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FlowAwaitingConfirmation {
		return ErrInvalidFlowState
	}
	f.state = FlowFormEntry
	f.snapshot = nil
	f.message = ""
	return nil
}

// fail records a message and moves the flow to the given state, dropping any
// frozen snapshot.
func (f *ConfirmFlow) fail(state FlowState, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = state
	f.snapshot = nil
	f.message = message
}

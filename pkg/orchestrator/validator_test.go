package orchestrator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/dayo/merchant-bulk-payments/pkg/models"
	processor_mocks "github.com/dayo/merchant-bulk-payments/pkg/processor/mocks"
	"github.com/dayo/merchant-bulk-payments/pkg/queue"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func queuedItem(id string, mode models.PaymentMode) models.PaymentItem {
	item := models.PaymentItem{
		ItemID:   id,
		Mode:     mode,
		Amount:   decimal.NewFromInt(100),
		Currency: "TZS",
	}
	switch mode {
	case models.ModeWalletToMno:
		item.Mno = &models.MnoPayout{PhoneNumber: "255700000001", Provider: "vodacom"}
	case models.ModeWalletToBank:
		item.Bank = &models.BankPayout{AccountNumber: "0011223344", BankCode: "CRDB"}
	case models.ModeWalletToWallet:
		item.Wallet = &models.WalletPayout{RecipientPhone: "255700000002"}
	}
	return item
}

func TestValidate_Success(t *testing.T) {
	// 1. Setup
	mockBackend := new(processor_mocks.Client)
	q := queue.New()
	_, _ = q.Add(queuedItem("A", models.ModeWalletToBank))
	_, _ = q.Add(queuedItem("B", models.ModeWalletToMno))
	validator := NewRecipientValidator(mockBackend, q, testLogger())

	// 2. Mock expectations
	summary := &models.ValidationSummary{
		TotalItems:   2,
		ValidItems:   1,
		InvalidItems: 1,
		Results: []models.ValidationResult{
			{ItemID: "A", IsValid: true, AccountName: "JOHN DOE"},
			{ItemID: "B", IsValid: false, Error: "invalid account"},
		},
	}
	mockBackend.On("ValidateRecipients", mock.Anything, mock.AnythingOfType("[]models.PaymentItem")).Return(summary, nil)

	// 3. Execute
	got, err := validator.Validate(context.Background())

	// 4. Assert
	assert.NoError(t, err)
	assert.Equal(t, summary, got)

	a, _ := q.Get("A")
	assert.True(t, a.Validated)
	assert.Equal(t, models.ItemPending, a.Status)
	assert.Equal(t, "JOHN DOE", a.AccountName)

	b, _ := q.Get("B")
	assert.True(t, b.Validated)
	assert.Equal(t, models.ItemFailed, b.Status)
	assert.Equal(t, "invalid account", b.Error)

	mockBackend.AssertExpectations(t)
}

func TestValidate_BackendError(t *testing.T) {
	// A transport failure aborts the whole call with no local mutation.
	mockBackend := new(processor_mocks.Client)
	q := queue.New()
	_, _ = q.Add(queuedItem("A", models.ModeWalletToBank))
	validator := NewRecipientValidator(mockBackend, q, testLogger())

	mockBackend.On("ValidateRecipients", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	before := q.Items()
	_, err := validator.Validate(context.Background())

	assert.Error(t, err)
	assert.Equal(t, before, q.Items())
	mockBackend.AssertExpectations(t)
}

func TestValidate_EmptyQueue(t *testing.T) {
	mockBackend := new(processor_mocks.Client)
	validator := NewRecipientValidator(mockBackend, queue.New(), testLogger())

	_, err := validator.Validate(context.Background())

	assert.ErrorIs(t, err, ErrEmptyQueue)
	mockBackend.AssertNotCalled(t, "ValidateRecipients")
}

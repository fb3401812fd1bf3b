package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCheckPayload(t *testing.T) {
	amount := decimal.NewFromInt(100)

	t.Run("Mobile Money", func(t *testing.T) {
		item := PaymentItem{
			ItemID: "itm-1",
			Mode:   ModeWalletToMno,
			Mno:    &MnoPayout{PhoneNumber: "255700000001", Provider: "vodacom"},
			Amount: amount,
		}
		assert.NoError(t, item.CheckPayload())

		item.Mno.Provider = ""
		assert.Error(t, item.CheckPayload())

		item.Mno = nil
		assert.Error(t, item.CheckPayload())
	})

	t.Run("Bank", func(t *testing.T) {
		item := PaymentItem{
			ItemID: "itm-2",
			Mode:   ModeWalletToBank,
			Bank:   &BankPayout{AccountNumber: "0011223344", BankCode: "CRDB"},
			Amount: amount,
		}
		assert.NoError(t, item.CheckPayload())

		item.Bank.BankCode = ""
		assert.Error(t, item.CheckPayload())
	})

	t.Run("Wallet", func(t *testing.T) {
		item := PaymentItem{
			ItemID: "itm-3",
			Mode:   ModeWalletToWallet,
			Wallet: &WalletPayout{RecipientPhone: "255700000002"},
			Amount: amount,
		}
		assert.NoError(t, item.CheckPayload())

		item.Wallet.RecipientPhone = ""
		assert.Error(t, item.CheckPayload())
	})

	t.Run("Unknown Mode", func(t *testing.T) {
		item := PaymentItem{ItemID: "itm-4", Mode: "CASH"}
		assert.Error(t, item.CheckPayload())
	})

	t.Run("Mismatched Payload", func(t *testing.T) {
		// A bank payload does not satisfy a mobile-money instruction.
		item := PaymentItem{
			ItemID: "itm-5",
			Mode:   ModeWalletToMno,
			Bank:   &BankPayout{AccountNumber: "0011223344", BankCode: "CRDB"},
		}
		assert.Error(t, item.CheckPayload())
	})
}

func TestBatchStatusTerminal(t *testing.T) {
	assert.True(t, BatchSuccess.Terminal())
	assert.True(t, BatchFailed.Terminal())
	assert.True(t, BatchPartialSuccess.Terminal())
	assert.False(t, BatchPending.Terminal())
	assert.False(t, BatchProcessing.Terminal())
}

func TestCountsConsistent(t *testing.T) {
	batch := BulkTransactionBatch{
		TotalTransactions:      5,
		SuccessfulTransactions: 2,
		FailedTransactions:     1,
		PendingTransactions:    2,
	}
	assert.True(t, batch.CountsConsistent())

	batch.PendingTransactions = 3
	assert.False(t, batch.CountsConsistent())
}

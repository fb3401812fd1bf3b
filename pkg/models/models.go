package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentMode identifies the rail used by a payment instruction.
type PaymentMode string

const (
	ModeWalletToMno    PaymentMode = "WALLET_TO_MNO"
	ModeWalletToBank   PaymentMode = "WALLET_TO_BANK"
	ModeWalletToWallet PaymentMode = "WALLET_TO_WALLET"
)

// ItemStatus defines the client-observed lifecycle state of a single payment item.
type ItemStatus string

const (
	ItemPending    ItemStatus = "PENDING"
	ItemProcessing ItemStatus = "PROCESSING"
	ItemSuccess    ItemStatus = "SUCCESS"
	ItemFailed     ItemStatus = "FAILED"
)

// Terminal reports whether no further transition can happen for the item.
func (s ItemStatus) Terminal() bool {
	return s == ItemSuccess || s == ItemFailed
}

// MnoPayout carries the fields required for a mobile-money disbursement.
type MnoPayout struct {
	PhoneNumber string `json:"phone_number"`
	Provider    string `json:"provider"`
}

// BankPayout carries the fields required for a bank transfer.
type BankPayout struct {
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	AccountName   string `json:"account_name"`
}

// WalletPayout carries the fields required for an internal wallet transfer.
type WalletPayout struct {
	RecipientPhone string `json:"recipient_phone"`
}

// PaymentItem is one instruction to move funds within a batch.
// Exactly one of Mno, Bank, Wallet is set, matching Mode.
// ItemID is immutable once assigned and is the sole correlation key used when
// merging backend results back into the queue.
type PaymentItem struct {
	ItemID      string          `json:"item_id"`
	Mode        PaymentMode     `json:"mode"`
	Mno         *MnoPayout      `json:"mno,omitempty"`
	Bank        *BankPayout     `json:"bank,omitempty"`
	Wallet      *WalletPayout   `json:"wallet,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
	AccountName string          `json:"account_name,omitempty"`
	Status      ItemStatus      `json:"status"`
	Validated   bool            `json:"validated"`
	Error       string          `json:"error,omitempty"`
}

// CheckPayload verifies that the payload variant matching Mode is present and
// carries its mandatory fields. Called at submission time; the validator itself
// forwards items as-is and lets the backend report per-item problems.
func (i *PaymentItem) CheckPayload() error {
	switch i.Mode {
	case ModeWalletToMno:
		if i.Mno == nil || i.Mno.PhoneNumber == "" || i.Mno.Provider == "" {
			return fmt.Errorf("item %s: mobile-money payout requires phone number and provider", i.ItemID)
		}
	case ModeWalletToBank:
		if i.Bank == nil || i.Bank.AccountNumber == "" || i.Bank.BankCode == "" {
			return fmt.Errorf("item %s: bank payout requires account number and bank code", i.ItemID)
		}
	case ModeWalletToWallet:
		if i.Wallet == nil || i.Wallet.RecipientPhone == "" {
			return fmt.Errorf("item %s: wallet payout requires recipient phone", i.ItemID)
		}
	default:
		return fmt.Errorf("item %s: unknown payment mode %q", i.ItemID, i.Mode)
	}
	return nil
}

// Recipient returns a short human-readable destination for the item.
func (i *PaymentItem) Recipient() string {
	switch i.Mode {
	case ModeWalletToMno:
		if i.Mno != nil {
			return i.Mno.PhoneNumber
		}
	case ModeWalletToBank:
		if i.Bank != nil {
			return i.Bank.AccountNumber
		}
	case ModeWalletToWallet:
		if i.Wallet != nil {
			return i.Wallet.RecipientPhone
		}
	}
	return ""
}

// ValidationResult is the per-item outcome of a pre-flight recipient check.
// It never changes amounts, modes or identifiers; AccountName may enrich the
// item's display name.
type ValidationResult struct {
	ItemID      string `json:"item_id"`
	IsValid     bool   `json:"is_valid"`
	AccountName string `json:"account_name,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ValidationSummary is the batch-level result of validating a list of items.
type ValidationSummary struct {
	TotalItems   int                `json:"total_items"`
	ValidItems   int                `json:"valid_items"`
	InvalidItems int                `json:"invalid_items"`
	Results      []ValidationResult `json:"results"`
}

package dto

import (
	"github.com/govstack/wallet_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentRequest submits a one-sided debit against the caller's own wallet for
// a government-service charge. It never names a destination wallet: value
// leaves the system to an external biller.
type PaymentRequest struct {
	WalletID      string          `json:"walletId" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	ReferenceID   string          `json:"referenceId" binding:"required"`
	ReferenceType string          `json:"referenceType" binding:"required,oneof=service_payment fee fine tax"`
	RecipientInfo *string         `json:"recipientInfo"` // Display-only label, not an addressable account
}

// DepositRequest credits a wallet, used by government payout flows.
type DepositRequest struct {
	WalletID      string                 `json:"walletId" binding:"required"`
	Amount        decimal.Decimal        `json:"amount" binding:"required"`
	Type          domain.TransactionType `json:"type" binding:"omitempty,oneof=deposit salary bonus"`
	Description   string                 `json:"description" binding:"required"`
	ReferenceID   string                 `json:"referenceId"`
	ReferenceType string                 `json:"referenceType"`
}

// WithdrawRequest places a dual-control debit: the entry is persisted pending
// with a hold on the available balance until approved or rejected.
type WithdrawRequest struct {
	WalletID    string          `json:"walletId" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

// SettleWithdrawalRequest approves or rejects a pending withdrawal.
type SettleWithdrawalRequest struct {
	Approve bool `json:"approve"`
}

// RefundRequest reverses a completed transaction.
type RefundRequest struct {
	Reason string `json:"reason" binding:"required"`
}

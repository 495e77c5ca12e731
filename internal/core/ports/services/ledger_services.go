package services

import (
	"context"

	"github.com/govstack/wallet_service/internal/core/domain"
	"github.com/govstack/wallet_service/internal/dto"
)

// LedgerSvcFacade exposes the fund-movement operations of the ledger engine.
// Every method re-reads authoritative wallet state inside its own DB
// transaction; callers must not pre-compute balances.
type LedgerSvcFacade interface {
	// TransferByNumber moves funds between two wallets addressed by wallet
	// number. Both legs settle atomically or not at all.
	TransferByNumber(ctx context.Context, req dto.TransferRequest, userID string) (*dto.TransferResponse, error)

	// Payment applies a one-sided debit for a government-service charge.
	// Retrying with the same referenceId returns the original entry.
	Payment(ctx context.Context, req dto.PaymentRequest, userID string) (*domain.Transaction, error)

	// Deposit credits a wallet (deposit, salary or bonus types).
	Deposit(ctx context.Context, req dto.DepositRequest, userID string) (*domain.Transaction, error)

	// Withdraw records a dual-control debit as pending with a hold on the
	// available balance.
	Withdraw(ctx context.Context, req dto.WithdrawRequest, userID string) (*domain.Transaction, error)

	// SettleWithdrawal approves (completes) or rejects (cancels) a pending
	// withdrawal, releasing its hold.
	SettleWithdrawal(ctx context.Context, transactionID string, approve bool, userID string) (*domain.Transaction, error)

	// Refund reverses a completed transaction exactly once.
	Refund(ctx context.Context, transactionID string, req dto.RefundRequest, userID string) (*domain.Transaction, error)
}

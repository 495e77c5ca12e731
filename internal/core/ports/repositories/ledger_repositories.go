package repositories

import (
	"context"
	"time"

	"github.com/govstack/wallet_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for ledger entries
type LedgerReader interface {
	// FindTransactionByID retrieves a ledger entry by its opaque identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindPaymentByReference retrieves a payment entry by the caller-chosen
	// reference, used for idempotent retries. Returns ErrNotFound when absent.
	FindPaymentByReference(ctx context.Context, walletID string, referenceID string) (*domain.Transaction, error)

	// ListTransactionsByWallet retrieves a paginated, newest-first list of
	// entries affecting a wallet using token-based pagination. It returns the
	// entries, a token for the next page, and an error.
	ListTransactionsByWallet(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// LedgerWriter defines write operations for ledger entries
type LedgerWriter interface {
	// SaveSettledTransactions persists settled entries and applies their balance
	// deltas to the affected wallets atomically. The entries must already be in
	// a terminal success state; balance effects are never applied twice.
	SaveSettledTransactions(ctx context.Context, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// SavePendingTransaction persists a pending entry together with a hold on
	// the source wallet's available balance. No balance is mutated.
	SavePendingTransaction(ctx context.Context, transaction domain.Transaction, holdWalletID string, holdAmount decimal.Decimal) error

	// SettleHeldTransaction moves a pending entry to a terminal state, releases
	// its hold, and applies the balance delta when the terminal state is
	// completed. approvedBy is recorded for dual-control flows.
	SettleHeldTransaction(ctx context.Context, transactionID string, final domain.TransactionStatus, approvedBy string, now time.Time) error

	// SaveRefundTransaction atomically flips the original entry from completed
	// to refunded, persists the reversing entry, and applies its balance delta.
	// The conditional status flip is the gate that keeps reversal single-shot.
	SaveRefundTransaction(ctx context.Context, refund domain.Transaction, originalTransactionID string, balanceChanges map[string]decimal.Decimal) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

package repositories

import (
	"context"
	"time"

	"github.com/govstack/wallet_service/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletReader defines read operations for wallet data
type WalletReader interface {
	// FindWalletByID retrieves a wallet by its opaque identifier.
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)

	// FindWalletByNumber retrieves a wallet by its public wallet number.
	FindWalletByNumber(ctx context.Context, walletNumber string) (*domain.Wallet, error)

	// FindWalletByOwner retrieves the single wallet mapped to an owner reference.
	FindWalletByOwner(ctx context.Context, owner domain.WalletOwnerRef) (*domain.Wallet, error)
}

// WalletWriter defines write operations for wallet data
type WalletWriter interface {
	// SaveWallet persists a new wallet. Returns apperrors.ErrDuplicate when a
	// wallet already exists for the owner reference.
	SaveWallet(ctx context.Context, wallet domain.Wallet) error

	// UpdateWalletStatus transitions a wallet's lifecycle status.
	UpdateWalletStatus(ctx context.Context, walletID string, status domain.WalletStatus, userID string, now time.Time) error
}

// WalletTransactionSupport defines operations used while settling ledger
// entries inside a DB transaction.
type WalletTransactionSupport interface {
	// FindWalletsByIDsForUpdate selects wallets and locks them for update within
	// a transaction. Rows are locked in deterministic wallet-id order.
	FindWalletsByIDsForUpdate(ctx context.Context, tx pgx.Tx, walletIDs []string) (map[string]domain.Wallet, error)

	// UpdateWalletBalancesInTx applies signed balance deltas to wallets within a
	// given transaction.
	UpdateWalletBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error

	// UpdateWalletHoldInTx adjusts the held amount of a wallet within a given
	// transaction. The delta may be negative to release a hold.
	UpdateWalletHoldInTx(ctx context.Context, tx pgx.Tx, walletID string, delta decimal.Decimal, userID string, now time.Time) error
}

// WalletRepositoryFacade combines all wallet-related repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
	WalletTransactionSupport
}

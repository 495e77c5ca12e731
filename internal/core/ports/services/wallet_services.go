package services

import (
	"context"

	"github.com/govstack/wallet_service/internal/core/domain"
	"github.com/govstack/wallet_service/internal/dto"
)

// WalletResolverSvc resolves an owner reference to its single wallet, creating
// one lazily on first access.
type WalletResolverSvc interface {
	// ResolveWallet fetches the wallet for the owner, creating it with the
	// default currency when none exists. Calling it twice for the same owner
	// never yields two distinct wallets.
	ResolveWallet(ctx context.Context, owner domain.WalletOwnerRef, ownerName string, userID string) (*domain.Wallet, error)
}

// WalletReaderSvc defines read operations over wallets.
type WalletReaderSvc interface {
	GetWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)
	GetWalletByNumber(ctx context.Context, walletNumber string) (*domain.Wallet, error)
	GetWalletByOwner(ctx context.Context, owner domain.WalletOwnerRef) (*domain.Wallet, error)

	// ListTransactions returns the wallet's ledger, newest first, with a cursor
	// for the next page.
	ListTransactions(ctx context.Context, walletID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// WalletWriterSvc defines lifecycle write operations over wallets.
type WalletWriterSvc interface {
	// CreateWallet creates a wallet for an owner that does not have one yet.
	CreateWallet(ctx context.Context, req dto.CreateWalletRequest, userID string) (*domain.Wallet, error)

	// UpdateWalletStatus transitions a wallet between active, suspended and
	// closed. Closing requires a zero balance; wallets are never hard-deleted.
	UpdateWalletStatus(ctx context.Context, walletID string, req dto.UpdateWalletStatusRequest, userID string) (*domain.Wallet, error)
}

// WalletSvcFacade combines all wallet service interfaces.
type WalletSvcFacade interface {
	WalletResolverSvc
	WalletReaderSvc
	WalletWriterSvc
}

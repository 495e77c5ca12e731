package pgsql

import (
	portsrepo "github.com/govstack/wallet_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	walletRepo := newPgxWalletRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, walletRepo)

	return portsrepo.RepositoryProvider{
		WalletRepo:   walletRepo,
		LedgerRepo:   ledgerRepo,
		CurrencyRepo: currencyRepo,
	}
}

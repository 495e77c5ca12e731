package services

import (
	portsrepo "github.com/govstack/wallet_service/internal/core/ports/repositories"
	portssvc "github.com/govstack/wallet_service/internal/core/ports/services"
	"github.com/govstack/wallet_service/internal/platform/config"
)

// NewServiceContainer wires all application services with their repository
// dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Wallet:   NewWalletService(cfg, repos.WalletRepo, repos.LedgerRepo, repos.CurrencyRepo),
		Ledger:   NewLedgerService(cfg, repos.WalletRepo, repos.LedgerRepo),
		Currency: NewCurrencyService(repos.CurrencyRepo),
	}
}

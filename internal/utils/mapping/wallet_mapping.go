package mapping

import (
	"github.com/govstack/wallet_service/internal/core/domain"
	"github.com/govstack/wallet_service/internal/models"
)

// ToModelWallet converts a domain Wallet to its DB model.
func ToModelWallet(w domain.Wallet) models.Wallet {
	return models.Wallet{
		WalletID:     w.WalletID,
		WalletNumber: w.WalletNumber,
		OwnerID:      w.OwnerID,
		OwnerType:    models.OwnerType(w.OwnerType),
		OwnerName:    w.OwnerName,
		Balance:      w.Balance,
		HeldAmount:   w.HeldAmount,
		CurrencyCode: w.CurrencyCode,
		Status:       models.WalletStatus(w.Status),
		IsVerified:   w.IsVerified,
		AuditFields:  ToModelAuditFields(w.AuditFields),
	}
}

// ToDomainWallet converts a DB wallet model to its domain representation.
func ToDomainWallet(m models.Wallet) domain.Wallet {
	return domain.Wallet{
		WalletID:     m.WalletID,
		WalletNumber: m.WalletNumber,
		OwnerID:      m.OwnerID,
		OwnerType:    domain.OwnerType(m.OwnerType),
		OwnerName:    m.OwnerName,
		Balance:      m.Balance,
		HeldAmount:   m.HeldAmount,
		CurrencyCode: m.CurrencyCode,
		Status:       domain.WalletStatus(m.Status),
		IsVerified:   m.IsVerified,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

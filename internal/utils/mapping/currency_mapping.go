package mapping

import (
	"github.com/govstack/wallet_service/internal/core/domain"
	"github.com/govstack/wallet_service/internal/models"
)

// ToModelCurrency converts a domain Currency to its DB model.
func ToModelCurrency(c domain.Currency) models.Currency {
	return models.Currency{
		CurrencyCode: c.CurrencyCode,
		Symbol:       c.Symbol,
		Name:         c.Name,
		Precision:    c.Precision,
		AuditFields:  ToModelAuditFields(c.AuditFields),
	}
}

// ToDomainCurrency converts a DB currency model to its domain representation.
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode: m.CurrencyCode,
		Symbol:       m.Symbol,
		Name:         m.Name,
		Precision:    m.Precision,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

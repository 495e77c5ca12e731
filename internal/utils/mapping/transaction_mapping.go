package mapping

import (
	"github.com/govstack/wallet_service/internal/core/domain"
	"github.com/govstack/wallet_service/internal/models"
)

// ToModelTransaction converts a domain Transaction to its DB model.
func ToModelTransaction(t domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     t.TransactionID,
		TransactionNumber: t.TransactionNumber,
		FromWalletID:      t.FromWalletID,
		ToWalletID:        t.ToWalletID,
		Amount:            t.Amount,
		FeeAmount:         t.FeeAmount,
		CurrencyCode:      t.CurrencyCode,
		TransactionType:   models.TransactionType(t.TransactionType),
		Status:            models.TransactionStatus(t.Status),
		Description:       t.Description,
		ReferenceID:       t.ReferenceID,
		ReferenceType:     t.ReferenceType,
		InitiatedBy:       t.InitiatedBy,
		ApprovedBy:        t.ApprovedBy,
		ReversalOf:        t.ReversalOf,
		ProcessedAt:       t.ProcessedAt,
		AuditFields:       ToModelAuditFields(t.AuditFields),
	}
}

// ToDomainTransaction converts a DB transaction model to its domain representation.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		TransactionNumber: m.TransactionNumber,
		FromWalletID:      m.FromWalletID,
		ToWalletID:        m.ToWalletID,
		Amount:            m.Amount,
		FeeAmount:         m.FeeAmount,
		CurrencyCode:      m.CurrencyCode,
		TransactionType:   domain.TransactionType(m.TransactionType),
		Status:            domain.TransactionStatus(m.Status),
		Description:       m.Description,
		ReferenceID:       m.ReferenceID,
		ReferenceType:     m.ReferenceType,
		InitiatedBy:       m.InitiatedBy,
		ApprovedBy:        m.ApprovedBy,
		ReversalOf:        m.ReversalOf,
		ProcessedAt:       m.ProcessedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

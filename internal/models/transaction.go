package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType at the persistence layer.
type TransactionType string

// TransactionStatus mirrors domain.TransactionStatus at the persistence layer.
type TransactionStatus string

// Transaction is the DB shape of a ledger entry.
type Transaction struct {
	TransactionID     string            `db:"transaction_id"`
	TransactionNumber string            `db:"transaction_number"`
	FromWalletID      *string           `db:"from_wallet_id"`
	ToWalletID        *string           `db:"to_wallet_id"`
	Amount            decimal.Decimal   `db:"amount"`
	FeeAmount         decimal.Decimal   `db:"fee_amount"`
	CurrencyCode      string            `db:"currency_code"`
	TransactionType   TransactionType   `db:"transaction_type"`
	Status            TransactionStatus `db:"status"`
	Description       string            `db:"description"`
	ReferenceID       string            `db:"reference_id"`
	ReferenceType     string            `db:"reference_type"`
	InitiatedBy       string            `db:"initiated_by"`
	ApprovedBy        *string           `db:"approved_by"`
	ReversalOf        *string           `db:"reversal_of"`
	ProcessedAt       *time.Time        `db:"processed_at"`
	AuditFields
}

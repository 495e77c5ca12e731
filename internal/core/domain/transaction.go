package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry. The credit/debit rendering of an
// entry is a pure function of its type.
type TransactionType string

const (
	TypeDeposit     TransactionType = "deposit"
	TypeWithdrawal  TransactionType = "withdrawal"
	TypeTransferIn  TransactionType = "transfer_in"
	TypeTransferOut TransactionType = "transfer_out"
	TypePayment     TransactionType = "payment"
	TypeRefund      TransactionType = "refund"
	TypeSalary      TransactionType = "salary"
	TypeFee         TransactionType = "fee"
	TypePenalty     TransactionType = "penalty"
	TypeBonus       TransactionType = "bonus"
)

// IsCredit reports whether the type increases the balance of the wallet the
// entry is listed against.
func (t TransactionType) IsCredit() bool {
	switch t {
	case TypeDeposit, TypeTransferIn, TypeRefund, TypeSalary, TypeBonus:
		return true
	}
	return false
}

// IsDebit reports whether the type decreases the balance of the wallet the
// entry is listed against.
func (t TransactionType) IsDebit() bool {
	switch t {
	case TypeWithdrawal, TypeTransferOut, TypePayment, TypeFee, TypePenalty:
		return true
	}
	return false
}

// IsValid reports whether the transaction type is a known value.
func (t TransactionType) IsValid() bool {
	return t.IsCredit() || t.IsDebit()
}

// TransactionStatus is the settlement state of a ledger entry.
type TransactionStatus string

const (
	StatusPending    TransactionStatus = "pending"
	StatusProcessing TransactionStatus = "processing"
	StatusCompleted  TransactionStatus = "completed"
	StatusFailed     TransactionStatus = "failed"
	StatusCancelled  TransactionStatus = "cancelled"
	StatusRefunded   TransactionStatus = "refunded"
)

// legalTransitions encodes the settlement state machine:
//
//	pending --> processing --> completed
//	pending --> processing --> failed
//	pending --> cancelled
//	completed --> refunded
//
// No transition skips pending; completed is the only state preceding refunded.
var legalTransitions = map[TransactionStatus][]TransactionStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusFailed},
	StatusCompleted:  {StatusRefunded},
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible. completed is
// terminal for settlement purposes but may still move to refunded.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case StatusFailed, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// Transaction represents a single ledger entry. At least one of FromWalletID
// and ToWalletID is populated, depending on the type; payments never carry a
// destination wallet.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`     // Primary Key (UUID)
	TransactionNumber string            `json:"transactionNumber"` // Format TXN-YYYYMMDD-NNNNNNNN, unique
	FromWalletID      *string           `json:"fromWalletID,omitempty"`
	ToWalletID        *string           `json:"toWalletID,omitempty"`
	Amount            decimal.Decimal   `json:"amount"`    // Positive
	FeeAmount         decimal.Decimal   `json:"feeAmount"` // Non-negative, deducted separately
	CurrencyCode      string            `json:"currencyCode"`
	TransactionType   TransactionType   `json:"transactionType"`
	Status            TransactionStatus `json:"status"`
	Description       string            `json:"description"`
	ReferenceID       string            `json:"referenceID"`   // Link to the originating business event
	ReferenceType     string            `json:"referenceType"` // e.g. service_payment, invoice, fine
	InitiatedBy       string            `json:"initiatedBy"`
	ApprovedBy        *string           `json:"approvedBy,omitempty"` // Dual-control flows only
	ReversalOf        *string           `json:"reversalOf,omitempty"` // Set on refund entries
	ProcessedAt       *time.Time        `json:"processedAt,omitempty"`
	AuditFields
}

// Settle advances the transaction through the legal settlement pipeline to the
// requested terminal state, stamping ProcessedAt. It returns false if the path
// from the current status is not legal.
func (t *Transaction) Settle(final TransactionStatus, at time.Time) bool {
	if t.Status != StatusPending || !StatusProcessing.CanTransitionTo(final) {
		return false
	}
	t.Status = final
	t.ProcessedAt = &at
	return true
}

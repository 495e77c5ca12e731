package dto

import (
	"time"

	"github.com/govstack/wallet_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionDirection is the rendering hint derived from the transaction type.
type TransactionDirection string

const (
	DirectionCredit TransactionDirection = "credit"
	DirectionDebit  TransactionDirection = "debit"
)

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	ID                string                   `json:"id"`
	TransactionNumber string                   `json:"transactionNumber"`
	FromWalletID      *string                  `json:"fromWalletId,omitempty"`
	ToWalletID        *string                  `json:"toWalletId,omitempty"`
	Amount            decimal.Decimal          `json:"amount"`
	FeeAmount         decimal.Decimal          `json:"feeAmount"`
	Currency          string                   `json:"currency"`
	TransactionType   domain.TransactionType   `json:"transactionType"`
	Direction         TransactionDirection     `json:"direction"`
	Status            domain.TransactionStatus `json:"status"`
	Description       string                   `json:"description"`
	ReferenceID       string                   `json:"referenceId,omitempty"`
	ReferenceType     string                   `json:"referenceType,omitempty"`
	InitiatedBy       string                   `json:"initiatedBy"`
	ApprovedBy        *string                  `json:"approvedBy,omitempty"`
	ProcessedAt       *time.Time               `json:"processedAt,omitempty"`
	CreatedAt         time.Time                `json:"createdAt"`
}

// ListTransactionsParams holds query parameters for the ledger view.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a page of ledger entries, newest first.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// directionOf derives the rendering sign from the transaction type.
func directionOf(t domain.TransactionType) TransactionDirection {
	if t.IsCredit() {
		return DirectionCredit
	}
	return DirectionDebit
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                txn.TransactionID,
		TransactionNumber: txn.TransactionNumber,
		FromWalletID:      txn.FromWalletID,
		ToWalletID:        txn.ToWalletID,
		Amount:            txn.Amount,
		FeeAmount:         txn.FeeAmount,
		Currency:          txn.CurrencyCode,
		TransactionType:   txn.TransactionType,
		Direction:         directionOf(txn.TransactionType),
		Status:            txn.Status,
		Description:       txn.Description,
		ReferenceID:       txn.ReferenceID,
		ReferenceType:     txn.ReferenceType,
		InitiatedBy:       txn.InitiatedBy,
		ApprovedBy:        txn.ApprovedBy,
		ProcessedAt:       txn.ProcessedAt,
		CreatedAt:         txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

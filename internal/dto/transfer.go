package dto

import (
	"github.com/shopspring/decimal"
)

// TransferRequest submits a peer-to-peer fund movement between two wallets
// identified by their public wallet numbers. Opaque wallet ids are never used
// for cross-party addressing.
type TransferRequest struct {
	FromWalletNumber string          `json:"fromWalletNumber" binding:"required,walletnumber"`
	ToWalletNumber   string          `json:"toWalletNumber" binding:"required,walletnumber"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	Description      string          `json:"description"`
	ReferenceType    string          `json:"referenceType"`
}

// TransferResponse returns both legs of a settled transfer. The out leg is the
// initiator's debit entry; the in leg is the destination's credit entry.
type TransferResponse struct {
	OutLeg TransactionResponse `json:"outLeg"`
	InLeg  TransactionResponse `json:"inLeg"`
}

package dto

import (
	"time"

	"github.com/govstack/wallet_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWalletRequest defines the data needed to create a wallet explicitly.
// Currency falls back to the configured default when omitted.
type CreateWalletRequest struct {
	OwnerID   string           `json:"ownerId" binding:"required"`
	OwnerType domain.OwnerType `json:"ownerType" binding:"required,oneof=citizen organization ncra government_agency super_admin"`
	OwnerName string           `json:"ownerName" binding:"required"`
	Currency  string           `json:"currency"` // Optional; default applied by the service
}

// UpdateWalletStatusRequest transitions a wallet's lifecycle status.
type UpdateWalletStatusRequest struct {
	Status domain.WalletStatus `json:"status" binding:"required,oneof=active suspended closed"`
}

// WalletResponse defines the data returned for a wallet. AvailableBalance is
// derived server-side; clients never compute it.
type WalletResponse struct {
	ID               string              `json:"id"`
	WalletNumber     string              `json:"walletNumber"`
	OwnerID          string              `json:"ownerId"`
	OwnerType        domain.OwnerType    `json:"ownerType"`
	OwnerName        string              `json:"ownerName"`
	Balance          decimal.Decimal     `json:"balance"`
	AvailableBalance decimal.Decimal     `json:"availableBalance"`
	Currency         string              `json:"currency"`
	Status           domain.WalletStatus `json:"status"`
	IsVerified       bool                `json:"isVerified"`
	CreatedAt        time.Time           `json:"createdAt"`
}

// WalletLookupResponse is the reduced projection returned for destination
// preflight lookups by wallet number. Balances are never exposed to the
// counterparty.
type WalletLookupResponse struct {
	WalletNumber string              `json:"walletNumber"`
	OwnerName    string              `json:"ownerName"`
	OwnerType    domain.OwnerType    `json:"ownerType"`
	Status       domain.WalletStatus `json:"status"`
	Currency     string              `json:"currency"`
}

// ToWalletResponse converts a domain.Wallet to WalletResponse DTO.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		ID:               w.WalletID,
		WalletNumber:     w.WalletNumber,
		OwnerID:          w.OwnerID,
		OwnerType:        w.OwnerType,
		OwnerName:        w.OwnerName,
		Balance:          w.Balance,
		AvailableBalance: w.AvailableBalance(),
		Currency:         w.CurrencyCode,
		Status:           w.Status,
		IsVerified:       w.IsVerified,
		CreatedAt:        w.CreatedAt,
	}
}

// ToWalletLookupResponse converts a domain.Wallet to the counterparty-safe
// lookup projection.
func ToWalletLookupResponse(w *domain.Wallet) WalletLookupResponse {
	return WalletLookupResponse{
		WalletNumber: w.WalletNumber,
		OwnerName:    w.OwnerName,
		OwnerType:    w.OwnerType,
		Status:       w.Status,
		Currency:     w.CurrencyCode,
	}
}

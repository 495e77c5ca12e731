package models

import (
	"github.com/shopspring/decimal"
)

// OwnerType mirrors domain.OwnerType at the persistence layer.
type OwnerType string

// WalletStatus mirrors domain.WalletStatus at the persistence layer.
type WalletStatus string

// Wallet is the DB shape of a wallet row.
// Balance and HeldAmount are numeric(20,4); available balance is derived
// (balance - held_amount) and never stored.
type Wallet struct {
	WalletID     string          `db:"wallet_id"`
	WalletNumber string          `db:"wallet_number"`
	OwnerID      string          `db:"owner_id"`
	OwnerType    OwnerType       `db:"owner_type"`
	OwnerName    string          `db:"owner_name"`
	Balance      decimal.Decimal `db:"balance"`
	HeldAmount   decimal.Decimal `db:"held_amount"`
	CurrencyCode string          `db:"currency_code"`
	Status       WalletStatus    `db:"status"`
	IsVerified   bool            `db:"is_verified"`
	AuditFields
}

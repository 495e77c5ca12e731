package domain

import (
	"github.com/shopspring/decimal"
)

// OwnerType categorizes the entity holding a wallet.
type OwnerType string

const (
	OwnerCitizen          OwnerType = "citizen"
	OwnerOrganization     OwnerType = "organization"
	OwnerNCRA             OwnerType = "ncra"
	OwnerGovernmentAgency OwnerType = "government_agency"
	OwnerSuperAdmin       OwnerType = "super_admin"
)

// IsValid reports whether the owner type is one of the supported categories.
func (t OwnerType) IsValid() bool {
	switch t {
	case OwnerCitizen, OwnerOrganization, OwnerNCRA, OwnerGovernmentAgency, OwnerSuperAdmin:
		return true
	}
	return false
}

// WalletStatus indicates the lifecycle state of a wallet.
type WalletStatus string

const (
	WalletActive              WalletStatus = "active"
	WalletSuspended           WalletStatus = "suspended"
	WalletClosed              WalletStatus = "closed"
	WalletPendingVerification WalletStatus = "pending_verification"
)

// WalletOwnerRef identifies the owner of a wallet. A given ref maps to at most
// one wallet.
type WalletOwnerRef struct {
	OwnerID   string    `json:"ownerID"`
	OwnerType OwnerType `json:"ownerType"`
}

// Key returns a stable string form of the ref, used for per-owner serialization.
func (r WalletOwnerRef) Key() string {
	return r.OwnerID + "/" + string(r.OwnerType)
}

// Wallet represents a ledger account tied to exactly one owner identity.
// WalletNumber is the public handle used for peer transfers; the opaque
// WalletID is never used for cross-party addressing.
type Wallet struct {
	WalletID     string          `json:"walletID"`     // Primary Key (UUID)
	WalletNumber string          `json:"walletNumber"` // Format WG-XXXX-XXXX-XXXX, unique
	OwnerID      string          `json:"ownerID"`
	OwnerType    OwnerType       `json:"ownerType"`
	OwnerName    string          `json:"ownerName"`
	Balance      decimal.Decimal `json:"balance"`    // Total ledger balance, >= 0
	HeldAmount   decimal.Decimal `json:"heldAmount"` // Reserved by pending holds, >= 0
	CurrencyCode string          `json:"currencyCode"`
	Status       WalletStatus    `json:"status"`
	IsVerified   bool            `json:"isVerified"`
	AuditFields
}

// AvailableBalance is the spendable balance after subtracting holds.
// Invariant: AvailableBalance() <= Balance as long as HeldAmount >= 0.
func (w *Wallet) AvailableBalance() decimal.Decimal {
	return w.Balance.Sub(w.HeldAmount)
}

// CanTransact reports whether the wallet may initiate transfers or payments.
func (w *Wallet) CanTransact() bool {
	return w.Status == WalletActive
}

// CanReceive reports whether the wallet may receive funds. Wallets awaiting
// verification can already be credited; suspended and closed ones cannot.
func (w *Wallet) CanReceive() bool {
	return w.Status == WalletActive || w.Status == WalletPendingVerification
}

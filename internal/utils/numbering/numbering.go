// Package numbering generates the human-readable identifiers exposed by the
// wallet API: wallet numbers (the public transfer handle) and time-ordered
// transaction numbers. The opaque UUIDs remain internal.
package numbering

import (
	"fmt"
	"regexp"
	"time"

	"github.com/govstack/wallet_service/internal/utils"
)

// WalletNumberPattern matches the public wallet handle format WG-XXXX-XXXX-XXXX.
var WalletNumberPattern = regexp.MustCompile(`^WG-\d{4}-\d{4}-\d{4}$`)

// TransactionNumberPattern matches the ledger entry format TXN-YYYYMMDD-NNNNNNNN.
var TransactionNumberPattern = regexp.MustCompile(`^TXN-\d{8}-\d{8}$`)

// NewWalletNumber generates a wallet number of the form WG-XXXX-XXXX-XXXX.
// Uniqueness is enforced by the DB; callers retry on collision.
func NewWalletNumber() (string, error) {
	digits, err := utils.GenerateSecureRandomDigits(12)
	if err != nil {
		return "", fmt.Errorf("failed to generate wallet number: %w", err)
	}
	return fmt.Sprintf("WG-%s-%s-%s", digits[0:4], digits[4:8], digits[8:12]), nil
}

// NewTransactionNumber generates a transaction number of the form
// TXN-YYYYMMDD-NNNNNNNN, date-prefixed so numbers sort roughly by time.
func NewTransactionNumber(at time.Time) (string, error) {
	digits, err := utils.GenerateSecureRandomDigits(8)
	if err != nil {
		return "", fmt.Errorf("failed to generate transaction number: %w", err)
	}
	return fmt.Sprintf("TXN-%s-%s", at.UTC().Format("20060102"), digits), nil
}

package numbering_test

import (
	"testing"
	"time"

	"github.com/govstack/wallet_service/internal/utils/numbering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWalletNumber(t *testing.T) {
	number, err := numbering.NewWalletNumber()
	require.NoError(t, err)
	assert.Regexp(t, numbering.WalletNumberPattern, number)
}

func TestNewTransactionNumber(t *testing.T) {
	at := time.Date(2026, 8, 29, 13, 45, 0, 0, time.UTC)

	number, err := numbering.NewTransactionNumber(at)
	require.NoError(t, err)
	assert.Regexp(t, numbering.TransactionNumberPattern, number)
	assert.Contains(t, number, "TXN-20260829-")
}

func TestNewTransactionNumber_UsesUTCDate(t *testing.T) {
	// 00:30 in UTC+2 is still the previous day in UTC.
	loc := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2026, 8, 30, 0, 30, 0, 0, loc)

	number, err := numbering.NewTransactionNumber(at)
	require.NoError(t, err)
	assert.Contains(t, number, "TXN-20260829-")
}

package pagination_test

import (
	"testing"
	"time"

	"github.com/govstack/wallet_service/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	sortTime := time.Date(2024, 6, 1, 10, 30, 0, 123456789, time.UTC)
	lastID := "7d4c9f1e-0b6a-4c1f-9a42-2f52a46f3a10"

	token := pagination.EncodeToken(sortTime, lastID)
	require.NotEmpty(t, token)

	gotSort, gotID, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, sortTime.Equal(gotSort))
	assert.Equal(t, lastID, gotID)
}

func TestDecodeTokenInvalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!")
	assert.Error(t, err)

	// Valid base64 but missing the separator.
	_, _, err = pagination.DecodeToken("bm8tc2VwYXJhdG9y")
	assert.Error(t, err)
}

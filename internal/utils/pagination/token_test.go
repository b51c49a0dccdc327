package pagination_test

import (
	"testing"
	"time"

	"github.com/wanderplan/trip_pricing_app/internal/utils/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateBasedTokenRoundTrip(t *testing.T) {
	original := time.Date(2025, 6, 14, 10, 30, 0, 123456789, time.UTC)

	token := pagination.EncodeDateBasedToken(original)
	decoded, err := pagination.DecodeDateBasedToken(token)

	require.NoError(t, err)
	assert.True(t, original.Equal(decoded))
}

func TestDecodeDateBasedToken_InvalidBase64(t *testing.T) {
	_, err := pagination.DecodeDateBasedToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeDateBasedToken_InvalidDate(t *testing.T) {
	token := pagination.EncodeMultiFieldToken("not a date")
	_, err := pagination.DecodeDateBasedToken(token)
	assert.Error(t, err)
}

func TestMultiFieldTokenRoundTrip(t *testing.T) {
	fields := []string{"2025-06-14T10:30:00Z", "itn-42"}

	token := pagination.EncodeMultiFieldToken(fields...)
	decoded, err := pagination.DecodeMultiFieldToken(token)

	require.NoError(t, err)
	assert.Equal(t, fields, decoded)
}

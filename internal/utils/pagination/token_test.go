package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitebooks/site_books_app/internal/utils/pagination"
)

func TestTokenRoundTrip(t *testing.T) {
	docDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 3, 14, 9, 26, 53, 589793238, time.UTC)

	token := pagination.EncodeToken(docDate, createdAt)
	require.NotEmpty(t, token)

	gotDate, gotCreated, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, gotDate.Equal(docDate))
	assert.True(t, gotCreated.Equal(createdAt))
}

func TestDecodeToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"missing separator", base64.StdEncoding.EncodeToString([]byte("2025-03-14T00:00:00Z"))},
		{"bad date", base64.StdEncoding.EncodeToString([]byte("yesterday|2025-03-14T00:00:00Z"))},
		{"bad created_at", base64.StdEncoding.EncodeToString([]byte("2025-03-14T00:00:00Z|later"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := pagination.DecodeToken(tt.token)
			assert.Error(t, err)
		})
	}
}

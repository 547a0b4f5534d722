package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeops/internal/core/apperror"
	"storeops/internal/core/id"
	"storeops/internal/domain"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr bool
	}{
		{"single day", "2024-03-01", "2024-03-01", false},
		{"month", "2024-03-01", "2024-03-31", false},
		{"missing from", "", "2024-03-01", true},
		{"bad format", "01/03/2024", "2024-03-01", true},
		{"inverted", "2024-03-02", "2024-03-01", true},
		{"too long", "2022-01-01", "2024-01-01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ParseWindow(tt.from, tt.to, domain.PageRequest{})
			if tt.wantErr {
				assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.from, w.FromDate())
			assert.Equal(t, tt.to, w.ToDate())
			assert.Equal(t, 1, w.Page)
			assert.Equal(t, domain.DefaultPageLimit, w.Limit)
		})
	}
}

func TestDefaultWindow(t *testing.T) {
	w := DefaultWindow(time.Date(2024, 3, 10, 15, 4, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-04", w.FromDate())
	assert.Equal(t, "2024-03-10", w.ToDate())
	assert.NoError(t, w.Validate())
}

func TestRowKey(t *testing.T) {
	key := RowKey("42", "2024-03-01")
	p, d, err := ParseRowKey(key)
	require.NoError(t, err)
	assert.Equal(t, id.Ref("42"), p)
	assert.Equal(t, "2024-03-01", d)

	for _, bad := range []string{"", "42", "|2024-03-01", "42|yesterday"} {
		_, _, err := ParseRowKey(bad)
		assert.Error(t, err, bad)
	}
}

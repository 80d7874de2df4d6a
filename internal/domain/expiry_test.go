package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpiryDate(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    time.Time
		wantOK  bool
	}{
		{
			name:    "bracketed",
			payload: "(01)09506000134352(17)251231(10)LOT1",
			want:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			wantOK:  true,
		},
		{
			name:    "bracketed day zero means month end",
			payload: "(01)09506000134352(17)240200",
			want:    time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			wantOK:  true,
		},
		{
			name:    "raw element string",
			payload: "0109506000134352172512311\x1d",
			want:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			wantOK:  true,
		},
		{
			name:    "raw with lot before expiry",
			payload: "]C10109506000134352" + "10ABC\x1d" + "17260115",
			want:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			wantOK:  true,
		},
		{name: "plain ean", payload: "4006381333931"},
		{name: "url", payload: "https://example.com/badge/42"},
		{name: "invalid month", payload: "(17)251331"},
		{name: "invalid day", payload: "(17)250231"},
		{name: "truncated", payload: "(17)2512"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExpiryDate(tt.payload)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestIsExpired(t *testing.T) {
	expiry := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.False(t, IsExpired(expiry, time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)))
	assert.True(t, IsExpired(expiry, time.Date(2026, 3, 11, 0, 1, 0, 0, time.UTC)))
	assert.False(t, IsExpired(expiry, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsExpired(time.Time{}, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)))
}

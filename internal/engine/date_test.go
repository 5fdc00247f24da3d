package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{"ISO", "1990-10-25", time.Date(1990, 10, 25, 0, 0, 0, 0, loc), false},
		{"ISO with spaces", "  1990-10-25 ", time.Date(1990, 10, 25, 0, 0, 0, 0, loc), false},
		{"Basic", "19901025", time.Date(1990, 10, 25, 0, 0, 0, 0, loc), false},
		{"RFC3339 keeps the calendar date", "1990-10-25T00:00:00Z", time.Date(1990, 10, 25, 0, 0, 0, 0, loc), false},
		{"Empty is missing, not an error", "", time.Time{}, false},
		{"Year unknown is rejected", "--10-25", time.Time{}, true},
		{"Garbage", "yesterday", time.Time{}, true},
		{"Impossible day", "2023-02-30", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.value, loc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestToday_TruncatesToMidnight(t *testing.T) {
	now := time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), Today(mockClock{now}))
}

type mockClock struct{ t time.Time }

func (m mockClock) Now() time.Time { return m.t }

package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateKey(t *testing.T) {
	tests := []struct {
		key         string
		expectError bool
	}{
		{key: "2024-01-01"},
		{key: "2024-02-29"},
		{key: "2024-2-29", expectError: true},
		{key: "2023-02-29", expectError: true},
		{key: "01-01-2024", expectError: true},
		{key: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, err := ParseDateKey(tt.key)
			if tt.expectError {
				assert.True(t, errors.Is(err, ErrValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDateKeysEndingAt(t *testing.T) {
	end := time.Date(2024, 3, 2, 23, 59, 0, 0, time.UTC)

	keys := DateKeysEndingAt(end, 4)

	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}, keys)
}

func TestDateKeysEndingAtAcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	end := time.Date(2024, 3, 11, 0, 30, 0, 0, loc)

	keys := DateKeysEndingAt(end, 3)

	assert.Equal(t, []string{"2024-03-09", "2024-03-10", "2024-03-11"}, keys)
}

func TestParseStatFilter(t *testing.T) {
	names, err := ParseStatFilter("all")
	require.NoError(t, err)
	assert.Equal(t, PrayerNames, names)

	names, err = ParseStatFilter("Asr")
	require.NoError(t, err)
	assert.Equal(t, []PrayerName{Asr}, names)

	_, err = ParseStatFilter("Tahajjud")
	assert.True(t, errors.Is(err, ErrValidation))
}

package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRelativeDateFrom(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		input string
		want  time.Time
	}{
		{"Just posted", today},
		{"Posted today", today},
		{"Active now", today},
		{"Yesterday", today.AddDate(0, 0, -1)},
		{"3 days ago", today.AddDate(0, 0, -3)},
		{"2 weeks ago", today.AddDate(0, 0, -14)},
		{"1 month ago", today.AddDate(0, 0, -30)},
		{"5 hours ago", today},
		{"30 minutes ago", today},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseRelativeDateFrom(tt.input, now)
			require.NotNil(t, got)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestParseRelativeDateUnparseable(t *testing.T) {
	for _, input := range []string{"", "banana", "sometime last year"} {
		assert.Nil(t, ParseRelativeDate(input), input)
	}
}

func TestParseISODate(t *testing.T) {
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{
		"2025-03-10T08:30:00Z",
		"2025-03-10T08:30:00",
		"2025-03-10",
	} {
		got := ParseISODate(input)
		require.NotNil(t, got, input)
		assert.True(t, got.Equal(want), input)
	}

	assert.Nil(t, ParseISODate("10 March 2025"))
	assert.Nil(t, ParseISODate(""))
}

package extract

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcde", Truncate("abcdefgh", 5))
	assert.Equal(t, "", Truncate("anything", 0))
}

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	// A two-byte rune straddling the cut must be dropped whole, not split.
	s := strings.Repeat("x", 499) + "é"
	got := Truncate(s, DescriptionLimit)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("x", 499), got)

	multi := strings.Repeat("é", 300)
	got = Truncate(multi, DescriptionLimit)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, DescriptionLimit, len(got))
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"already clean", "Barista at Campus Cafe", "Barista at Campus Cafe"},
		{"collapses runs", "Research   Assistant \t Biology", "Research Assistant Biology"},
		{"trims edges", "  Library Aide \n", "Library Aide"},
		{"newlines and tabs", "Peer\nTutor\t\tMath", "Peer Tutor Math"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanTextIdempotent(t *testing.T) {
	inputs := []string{"", "  a  b  ", "one two", " \t\n mixed   whitespace \r "}
	for _, s := range inputs {
		once := CleanText(s)
		assert.Equal(t, once, CleanText(once))
	}
}

func TestGenerateSourceIDDeterministic(t *testing.T) {
	first := GenerateSourceID("Barista", "Starbucks", "https://example.com/jobs/1")
	second := GenerateSourceID("Barista", "Starbucks", "https://example.com/jobs/1")

	assert.Equal(t, first, second)
	assert.Len(t, first, 16)
}

func TestGenerateSourceIDSkipsEmptyParts(t *testing.T) {
	withEmpty := GenerateSourceID("Barista", "", "Starbucks")
	without := GenerateSourceID("Barista", "Starbucks")

	assert.Equal(t, without, withEmpty)
}

func TestGenerateSourceIDDistinguishesInputs(t *testing.T) {
	assert.NotEqual(t,
		GenerateSourceID("Barista", "Starbucks"),
		GenerateSourceID("Barista", "Peets"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "uc-berkeley", Slugify("UC Berkeley"))
	assert.Equal(t, "state-college", Slugify("  State  College! "))
}

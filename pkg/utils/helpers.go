package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateRequestID generates a unique request ID for tracking
func GenerateRequestID() string {
	return uuid.New().String()
}

// FormatDuration formats a duration to a human-readable string
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.String()
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
	return fmt.Sprintf("%.1fh", d.Hours())
}

// Contains checks if a string slice contains a specific string
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// CleanText collapses all whitespace runs to single spaces and trims.
// Idempotent: CleanText(CleanText(s)) == CleanText(s).
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// GenerateSourceID builds a deterministic short identifier from the given
// parts. Empty parts are skipped; the rest are joined with "|" and hashed
// with md5, truncated to 16 hex characters. Stable across runs and
// processes so the same posting always maps to the same ID.
func GenerateSourceID(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	sum := md5.Sum([]byte(strings.Join(nonEmpty, "|")))
	return hex.EncodeToString(sum[:])[:16]
}

var slugStrip = regexp.MustCompile(`[^a-z0-9\s-]`)
var slugSpaces = regexp.MustCompile(`\s+`)

// Slugify converts free text to a URL-friendly slug
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugStrip.ReplaceAllString(s, "")
	return slugSpaces.ReplaceAllString(strings.TrimSpace(s), "-")
}

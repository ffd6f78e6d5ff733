package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var relativeDateRe = regexp.MustCompile(`(\d+)\s*(day|week|month|hour|minute)s?\s*ago`)

// ParseRelativeDate resolves phrases like "3 days ago" or "Just posted"
// against today's date. Unparseable text resolves to nil, never an error.
func ParseRelativeDate(text string) *time.Time {
	return ParseRelativeDateFrom(text, time.Now())
}

// ParseRelativeDateFrom is ParseRelativeDate with an explicit reference
// time, for deterministic resolution.
func ParseRelativeDateFrom(text string, now time.Time) *time.Time {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(strings.TrimSpace(text))
	today := truncateToDay(now)

	if strings.Contains(lower, "just") || strings.Contains(lower, "now") || strings.Contains(lower, "today") {
		return &today
	}
	if strings.Contains(lower, "yesterday") {
		d := today.AddDate(0, 0, -1)
		return &d
	}

	match := relativeDateRe.FindStringSubmatch(lower)
	if match == nil {
		return nil
	}
	num, err := strconv.Atoi(match[1])
	if err != nil {
		return nil
	}

	switch match[2] {
	case "day":
		d := today.AddDate(0, 0, -num)
		return &d
	case "week":
		d := today.AddDate(0, 0, -num*7)
		return &d
	case "month":
		d := today.AddDate(0, 0, -num*30)
		return &d
	case "hour", "minute":
		return &today
	}
	return nil
}

// ParseISODate parses an ISO-8601 timestamp or plain date, returning nil
// on failure so callers can drop the field and keep the record.
func ParseISODate(text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, text); err == nil {
			d := truncateToDay(t)
			return &d
		}
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

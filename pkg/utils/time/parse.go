// ABOUTME: Parses the timestamp spellings accepted by the from parameter
// ABOUTME: Wiki database timestamps, unix seconds and the common RFC layouts

package time

import (
	"strconv"
	"strings"
	"time"
)

// WikiLayout is the fixed-width timestamp stored in the wiki database
const WikiLayout = "20060102150405"

var layouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.RFC822,
	time.RFC822Z,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// ParseFlexibleTime reads s as a wiki timestamp, unix seconds (optionally
// prefixed with @) or one of the RFC layouts. The result is UTC; the zero
// time means s was empty or unrecognised.
func ParseFlexibleTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	if t, ok := parseDigits(s); ok {
		return t
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func parseDigits(s string) (time.Time, bool) {
	unix := strings.HasPrefix(s, "@")
	s = strings.TrimPrefix(s, "@")
	if s == "" || strings.Trim(s, "0123456789") != "" {
		return time.Time{}, false
	}

	if !unix && len(s) == len(WikiLayout) {
		t, err := time.Parse(WikiLayout, s)
		return t, err == nil
	}

	// Anything longer than 11 digits lands past the year 5000
	if len(s) > 11 {
		return time.Time{}, false
	}
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(secs, 0).UTC(), true
}

// FormatTimestamp renders t in the wiki database layout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(WikiLayout)
}

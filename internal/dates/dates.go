// Package dates normalizes the timestamp formats the upstream APIs emit.
package dates

import (
	"strings"
	"time"
)

// layouts covers the shapes seen across the bill and vote endpoints:
// full RFC 3339, second-precision UTC with a literal Z, minute
// precision, and bare dates.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04Z",
	"2006-01-02",
}

// Parse converts an upstream timestamp into a UTC instant. It returns
// nil for empty, malformed, or unparseable input; absence is an expected
// outcome and callers store it as unset rather than a sentinel date.
func Parse(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			utc := parsed.UTC()
			return &utc
		}
	}

	return nil
}

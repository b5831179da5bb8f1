package util

import (
	"strings"
	"time"
)

// timestampLayouts covers the date shapes the site APIs hand back.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"20060102",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseTimestamp parses a best-effort timestamp string and returns
// Unix seconds, or 0 when nothing matches.
func ParseTimestamp(value string) int64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Unix()
		}
	}
	return 0
}

package ingest

import (
	"fmt"
	"strings"
	"time"

	"geocli/pkg/contracts/domain"
)

// dateLayouts are the textual date formats accepted across source files,
// tried in order. Sources disagree on formats (ISO dates, European
// day-first, RFC3339 timestamps, space-separated report names), so every
// row goes through the same normaliser.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006 15:04",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05 MST",
	"2006 01 02",
	"2/1/2006",
	"Jan 2, 2006",
}

// ParseDate normalises a source date string onto a midnight-UTC calendar
// day. Rows whose date cannot be parsed are dropped by callers, never
// fatal to a run.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.Midnight(t.UTC()), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised date format: %q", s)
}

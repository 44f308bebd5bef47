package ingest

import (
	"fmt"
	"strconv"
	"strings"
)

// currencyMarkers are stripped from raw price cells before numeric
// parsing. Listing feeds mix bare numbers with "$1,299.99" and "999 USD".
var currencyMarkers = []string{"$", "€", "£", "¥", "USD", "EUR", "GBP"}

// ParsePrice parses a raw price or index cell into a float, tolerating
// currency symbols and thousands separators.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}

	for _, marker := range currencyMarkers {
		s = strings.ReplaceAll(s, marker, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric value: %q", s)
	}
	return v, nil
}

// Stats counts the outcome of reading one source table. Dropped rows are
// diagnostics, not errors; the run continues without them.
type Stats struct {
	Source  string `json:"source"`
	Parsed  int    `json:"parsed"`
	Dropped int    `json:"dropped"`
}

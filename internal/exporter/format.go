package exporter

import (
	"strconv"

	"geocli/pkg/contracts/domain"
)

// formatValue renders a series value for CSV. Missing values become the
// empty cell, never "0" and never "NaN".
func formatValue(v float64) string {
	if domain.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatFixed renders a value with fixed decimal places, empty when missing.
func formatFixed(v float64, precision int) string {
	if domain.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}

func formatBool(v bool) string {
	return strconv.FormatBool(v)
}

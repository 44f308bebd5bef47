package ingest

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// SeriesOptions configures how a single-signal daily CSV is read.
type SeriesOptions struct {
	// Comma is the field delimiter; zero means ','.
	Comma rune
	// SkipRows drops preamble rows before the header. The energy feeds
	// carry two banner rows above the real header.
	SkipRows int
	// DateColumn and ValueColumn select columns by header name
	// (case-insensitive substring match). Empty means columns 0 and 1.
	DateColumn  string
	ValueColumn string
}

// SeriesReader reads (date, value) CSV tables into a sparse day->value map.
type SeriesReader struct {
	logger *slog.Logger
}

// NewSeriesReader creates a series reader. A nil logger falls back to the
// default slog logger.
func NewSeriesReader(logger *slog.Logger) *SeriesReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &SeriesReader{logger: logger}
}

// ReadDaily reads one daily price/index series. Rows with unparseable
// dates or values are dropped and counted. A later observation for the
// same day wins, matching file order.
func (r *SeriesReader) ReadDaily(path, signal string, opts SeriesOptions) (map[time.Time]float64, Stats, error) {
	stats := Stats{Source: signal}

	file, err := os.Open(path)
	if err != nil {
		return nil, stats, fmt.Errorf("open source %s: %w", signal, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, stats, fmt.Errorf("read source %s: %w", signal, err)
	}

	if opts.SkipRows >= len(rows) {
		return nil, stats, fmt.Errorf("source %s: no rows after skipping %d preamble rows", signal, opts.SkipRows)
	}
	rows = rows[opts.SkipRows:]

	if len(rows) == 0 {
		return nil, stats, fmt.Errorf("source %s: empty table", signal)
	}

	dateIdx, valueIdx := 0, 1
	header := rows[0]
	if opts.DateColumn != "" || opts.ValueColumn != "" {
		dateIdx = findColumn(header, opts.DateColumn, 0)
		valueIdx = findColumn(header, opts.ValueColumn, 1)
	}

	values := make(map[time.Time]float64)
	for _, row := range rows[1:] {
		if len(row) <= dateIdx || len(row) <= valueIdx {
			stats.Dropped++
			continue
		}

		date, err := ParseDate(row[dateIdx])
		if err != nil {
			stats.Dropped++
			continue
		}
		value, err := ParsePrice(row[valueIdx])
		if err != nil {
			stats.Dropped++
			continue
		}

		values[date] = value
		stats.Parsed++
	}

	r.logger.Info("series source loaded",
		slog.String("signal", signal),
		slog.String("path", path),
		slog.Int("parsed", stats.Parsed),
		slog.Int("dropped", stats.Dropped))

	return values, stats, nil
}

// findColumn returns the index of the first header whose lowercase form
// contains name, or fallback when nothing matches.
func findColumn(header []string, name string, fallback int) int {
	if name == "" {
		return fallback
	}
	name = strings.ToLower(name)
	for i, h := range header {
		if strings.Contains(strings.ToLower(strings.TrimSpace(h)), name) {
			return i
		}
	}
	return fallback
}

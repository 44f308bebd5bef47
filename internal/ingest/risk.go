package ingest

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"geocli/pkg/contracts/domain"
)

// RiskReader reads the geopolitical indicator tables. Each file is a
// semicolon-delimited wide table: one date column followed by one column
// per country, one file per indicator.
type RiskReader struct {
	logger *slog.Logger
}

// NewRiskReader creates a risk table reader.
func NewRiskReader(logger *slog.Logger) *RiskReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &RiskReader{logger: logger}
}

// ReadIndicator melts one wide indicator file into long-form country/day
// observations. Rows with unparseable dates are dropped and counted;
// empty cells are simply absent from the result (a country does not
// report every day).
func (r *RiskReader) ReadIndicator(path, indicator string) ([]domain.RiskObservation, Stats, error) {
	stats := Stats{Source: indicator}

	file, err := os.Open(path)
	if err != nil {
		return nil, stats, fmt.Errorf("open risk source %s: %w", indicator, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, stats, fmt.Errorf("read risk source %s: %w", indicator, err)
	}

	if len(rows) < 2 {
		return nil, stats, fmt.Errorf("risk source %s: no data rows", indicator)
	}

	header := rows[0]
	if len(header) < 2 {
		return nil, stats, fmt.Errorf("risk source %s: need a date column plus country columns", indicator)
	}

	countries := make([]string, len(header))
	for i := 1; i < len(header); i++ {
		countries[i] = strings.TrimSpace(header[i])
	}

	var observations []domain.RiskObservation
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		date, err := ParseDate(row[0])
		if err != nil {
			stats.Dropped++
			continue
		}

		for i := 1; i < len(row) && i < len(countries); i++ {
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			value, err := ParsePrice(cell)
			if err != nil {
				stats.Dropped++
				continue
			}
			observations = append(observations, domain.RiskObservation{
				Country:   countries[i],
				Date:      date,
				Indicator: indicator,
				Value:     value,
			})
			stats.Parsed++
		}
	}

	r.logger.Info("risk source loaded",
		slog.String("indicator", indicator),
		slog.String("path", path),
		slog.Int("parsed", stats.Parsed),
		slog.Int("dropped", stats.Dropped))

	return observations, stats, nil
}

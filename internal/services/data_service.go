package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"geocli/internal/config"
)

// Table is one result table read back from the results directory.
type Table struct {
	Name    string     `json:"name"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// DataService serves the generated result tables to the HTTP layer. It
// reads straight from disk on every call: the pipeline regenerates the
// files wholesale, so there is nothing worth caching between runs.
type DataService struct {
	paths  *config.Paths
	logger *slog.Logger
	tables map[string]string
}

// NewDataService creates a read-only view over the results directory.
func NewDataService(paths *config.Paths, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataService{
		paths:  paths,
		logger: logger,
		tables: map[string]string{
			"unified_timeseries":          paths.UnifiedCSV,
			"unified_timeseries_enriched": paths.EnrichedCSV,
			"correlation_records":         paths.CorrelationCSV,
			"gpu_price_index":             paths.GPUIndexCSV,
			"ram_price_index":             paths.RAMIndexCSV,
			"category_summary":            paths.CategoryCSV,
			"producer_risk":               paths.ProducerRiskCSV,
		},
	}
}

// TableNames lists the table names this service can serve, sorted.
func (s *DataService) TableNames() []string {
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetTable reads one result table. Unknown names and tables that have
// not been generated yet both return ErrTableUnavailable-style errors
// the handler maps to 404.
func (s *DataService) GetTable(ctx context.Context, name string) (*Table, error) {
	path, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("unknown table %q: %w", name, os.ErrNotExist)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", name, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", name, err)
	}

	table := &Table{Name: name}
	if len(rows) > 0 {
		table.Headers = rows[0]
		table.Rows = rows[1:]
	}

	s.logger.DebugContext(ctx, "table served",
		slog.String("table", name),
		slog.Int("rows", len(table.Rows)))

	return table, nil
}

// GetInsights returns the rendered insights report text.
func (s *DataService) GetInsights(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.paths.InsightsTXT)
	if err != nil {
		return "", fmt.Errorf("read insights report: %w", err)
	}
	return string(data), nil
}

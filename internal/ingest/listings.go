package ingest

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"geocli/pkg/contracts/domain"
)

// capacityPattern extracts the first capacity token ("8GB", "16 GB")
// from a listing title.
var capacityPattern = regexp.MustCompile(`(?i)(\d+)\s*GB`)

// ListingReader reads raw hardware listing snapshots (GPU and RAM deals)
// from CSV or XLSX files. Column positions are discovered from the header
// since the feeds disagree on naming.
type ListingReader struct {
	logger *slog.Logger
}

// NewListingReader creates a hardware listing reader.
func NewListingReader(logger *slog.Logger) *ListingReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListingReader{logger: logger}
}

// ReadFile reads one listing snapshot, dispatching on file extension.
func (r *ListingReader) ReadFile(path string, kind domain.ListingKind) ([]domain.Listing, Stats, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return r.readXLSX(path, kind)
	default:
		return r.readCSV(path, kind)
	}
}

func (r *ListingReader) readCSV(path string, kind domain.ListingKind) ([]domain.Listing, Stats, error) {
	stats := Stats{Source: string(kind)}

	file, err := os.Open(path)
	if err != nil {
		return nil, stats, fmt.Errorf("open %s listings: %w", kind, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, stats, fmt.Errorf("read %s listings: %w", kind, err)
	}

	return r.parseRows(rows, path, kind)
}

func (r *ListingReader) readXLSX(path string, kind domain.ListingKind) ([]domain.Listing, Stats, error) {
	stats := Stats{Source: string(kind)}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, stats, fmt.Errorf("open %s workbook: %w", kind, err)
	}
	defer f.Close()

	// Take the first sheet that yields a plausible listing table: a
	// header row with a recognisable price column and at least one row.
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) < 2 {
			continue
		}
		if findColumn(rows[0], "price", -1) == -1 && findColumn(rows[0], "amount", -1) == -1 {
			continue
		}

		r.logger.Debug("found listing sheet",
			slog.String("path", path),
			slog.String("sheet", name))
		return r.parseRows(rows, path, kind)
	}

	return nil, stats, fmt.Errorf("%s workbook %s: no listing sheet found", kind, path)
}

// parseRows maps a raw table into listings. Rows with an unparseable
// date or price are dropped and counted, never fatal.
func (r *ListingReader) parseRows(rows [][]string, path string, kind domain.ListingKind) ([]domain.Listing, Stats, error) {
	stats := Stats{Source: string(kind)}

	if len(rows) < 2 {
		return nil, stats, fmt.Errorf("%s listings %s: no data rows", kind, path)
	}

	header := rows[0]
	titleIdx := firstColumn(header, []string{"title", "name", "model", "product"}, 0)
	priceIdx := firstColumn(header, []string{"price", "amount"}, -1)
	dateIdx := firstColumn(header, []string{"date", "posted", "created"}, -1)
	if priceIdx == -1 {
		return nil, stats, fmt.Errorf("%s listings %s: no price column", kind, path)
	}

	source := filepath.Base(path)

	var listings []domain.Listing
	for _, row := range rows[1:] {
		if len(row) <= priceIdx || len(row) <= titleIdx {
			stats.Dropped++
			continue
		}

		price, err := ParsePrice(row[priceIdx])
		if err != nil {
			stats.Dropped++
			continue
		}

		// Feeds without a date column are point-in-time snapshots; the
		// snapshot date is taken from the filename by the caller side
		// convention "<name>_YYYY-MM-DD.<ext>".
		var date = snapshotDateFromName(source)
		if dateIdx != -1 && dateIdx < len(row) {
			parsed, err := ParseDate(row[dateIdx])
			if err != nil {
				stats.Dropped++
				continue
			}
			date = parsed
		}
		if date.IsZero() {
			stats.Dropped++
			continue
		}

		title := strings.TrimSpace(row[titleIdx])
		listings = append(listings, domain.Listing{
			Source:     source,
			Date:       date,
			Title:      title,
			Price:      price,
			CapacityGB: capacityFromTitle(title),
			Kind:       kind,
		})
		stats.Parsed++
	}

	r.logger.Info("listing source loaded",
		slog.String("kind", string(kind)),
		slog.String("path", path),
		slog.Int("parsed", stats.Parsed),
		slog.Int("dropped", stats.Dropped))

	return listings, stats, nil
}

// capacityFromTitle pulls the first "<n>GB" token out of a listing title.
// Returns 0 when the title names no capacity.
func capacityFromTitle(title string) int {
	m := capacityPattern.FindStringSubmatch(title)
	if m == nil {
		return 0
	}
	gb, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return gb
}

// snapshotDateFromName extracts a trailing YYYY-MM-DD date from a
// snapshot filename, e.g. "gpu-deals_2026-01-15.csv".
func snapshotDateFromName(name string) time.Time {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if len(base) >= 10 {
		if parsed, err := ParseDate(base[len(base)-10:]); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// firstColumn returns the index of the first header matching any of the
// candidate names, or fallback.
func firstColumn(header []string, candidates []string, fallback int) int {
	for _, candidate := range candidates {
		if idx := findColumn(header, candidate, -1); idx != -1 {
			return idx
		}
	}
	return fallback
}

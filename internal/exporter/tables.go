package exporter

import (
	"sort"
	"time"

	"geocli/internal/analytics"
	"geocli/internal/hardware"
	"geocli/pkg/contracts/domain"
)

const dateLayout = "2006-01-02"

// ExportUnifiedSeries writes the calendar-aligned table: one row per day,
// one column per signal in series order. Missing values are empty cells.
func (w *CSVWriter) ExportUnifiedSeries(filePath string, series *domain.UnifiedSeries) error {
	names := series.ColumnNames()
	headers := append([]string{"date"}, names...)

	records := make([][]string, 0, series.Len())
	for i, day := range series.Dates() {
		record := make([]string, 0, len(headers))
		record = append(record, day.Format(dateLayout))
		for _, name := range names {
			record = append(record, formatValue(series.At(name, i)))
		}
		records = append(records, record)
	}

	return w.WriteTable(filePath, headers, records)
}

// ExportCorrelations writes the full correlation sweep. Undefined
// coefficients export as empty cells with defined=false, never as zero.
func (w *CSVWriter) ExportCorrelations(filePath string, records []domain.CorrelationRecord) error {
	headers := []string{"risk_signal", "market_signal", "lag_days", "correlation", "samples", "defined"}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		coefficient := ""
		if rec.Defined {
			coefficient = formatFixed(rec.Coefficient, 6)
		}
		rows = append(rows, []string{
			rec.RiskSignal,
			rec.MarketSignal,
			formatInt(rec.LagDays),
			coefficient,
			formatInt(rec.Samples),
			formatBool(rec.Defined),
		})
	}

	return w.WriteTable(filePath, headers, rows)
}

// ExportTierIndices writes one price-index table for the given tier
// indices: date column plus one column per tier signal, union of all
// observed days in ascending order.
func (w *CSVWriter) ExportTierIndices(filePath string, indices []hardware.TierIndex) error {
	daySet := make(map[time.Time]bool)
	for _, idx := range indices {
		for day := range idx.Values {
			daySet[day] = true
		}
	}
	days := make([]time.Time, 0, len(daySet))
	for day := range daySet {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	headers := []string{"date"}
	for _, idx := range indices {
		headers = append(headers, idx.Signal, idx.Signal+"_listings")
	}

	records := make([][]string, 0, len(days))
	for _, day := range days {
		record := []string{day.Format(dateLayout)}
		for _, idx := range indices {
			if v, ok := idx.Values[day]; ok {
				record = append(record, formatFixed(v, 2), formatInt(idx.Listings[day]))
			} else {
				record = append(record, "", "0")
			}
		}
		records = append(records, record)
	}

	return w.WriteTable(filePath, headers, records)
}

// ExportCategorySummary writes the per-role-tag indicator statistics.
func (w *CSVWriter) ExportCategorySummary(filePath string, stats []analytics.CategoryStats) error {
	headers := []string{"tag", "indicator", "mean", "std_dev", "max", "days"}

	records := make([][]string, 0, len(stats))
	for _, s := range stats {
		records = append(records, []string{
			s.Tag,
			s.Indicator,
			formatFixed(s.Mean, 4),
			formatFixed(s.StdDev, 4),
			formatFixed(s.Max, 4),
			formatInt(s.Days),
		})
	}

	return w.WriteTable(filePath, headers, records)
}

// ExportProducerRisk writes the strategic-minerals producer ranking.
func (w *CSVWriter) ExportProducerRisk(filePath string, producers []analytics.ProducerRisk) error {
	headers := []string{"country", "geopolitical_risk", "conflicts", "band"}

	records := make([][]string, 0, len(producers))
	for _, p := range producers {
		records = append(records, []string{
			p.Country,
			formatFixed(p.Risk, 4),
			formatFixed(p.Conflict, 4),
			p.Band,
		})
	}

	return w.WriteTable(filePath, headers, records)
}

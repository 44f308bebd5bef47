package domain

import (
	"math"
	"time"
)

// UnifiedSeries is the calendar-aligned table every analysis stage works
// from. All columns share the identical daily date index; a missing value
// is represented as NaN, never zero. Columns keep insertion order so that
// exports and correlation sweeps are deterministic.
type UnifiedSeries struct {
	dates   []time.Time
	columns map[string][]float64
	order   []string
}

// NewUnifiedSeries creates an empty series spanning every calendar day
// from start to end inclusive. Start and end are truncated to midnight UTC.
func NewUnifiedSeries(start, end time.Time) *UnifiedSeries {
	start = Midnight(start)
	end = Midnight(end)

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}

	return &UnifiedSeries{
		dates:   dates,
		columns: make(map[string][]float64),
	}
}

// Midnight truncates a timestamp to its calendar day in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Len returns the number of calendar days in the index.
func (s *UnifiedSeries) Len() int {
	return len(s.dates)
}

// Dates returns the shared daily date index.
func (s *UnifiedSeries) Dates() []time.Time {
	return s.dates
}

// ColumnNames returns column names in insertion order.
func (s *UnifiedSeries) ColumnNames() []string {
	return s.order
}

// HasColumn reports whether the named signal exists.
func (s *UnifiedSeries) HasColumn(name string) bool {
	_, ok := s.columns[name]
	return ok
}

// Column returns the values for the named signal, aligned to Dates().
// The second return is false when the column does not exist.
func (s *UnifiedSeries) Column(name string) ([]float64, bool) {
	col, ok := s.columns[name]
	return col, ok
}

// SetColumn aligns the given sparse day->value map onto the date index and
// stores it under name. Days outside the index are ignored; days without a
// value become NaN. Setting an existing column replaces it in place.
func (s *UnifiedSeries) SetColumn(name string, byDay map[time.Time]float64) {
	col := make([]float64, len(s.dates))
	for i, d := range s.dates {
		if v, ok := byDay[Midnight(d)]; ok {
			col[i] = v
		} else {
			col[i] = math.NaN()
		}
	}
	s.setRaw(name, col)
}

// SetColumnValues stores an already-aligned value slice. The slice length
// must equal Len(); shorter slices are padded with NaN, longer ones truncated.
func (s *UnifiedSeries) SetColumnValues(name string, values []float64) {
	col := make([]float64, len(s.dates))
	for i := range col {
		if i < len(values) {
			col[i] = values[i]
		} else {
			col[i] = math.NaN()
		}
	}
	s.setRaw(name, col)
}

func (s *UnifiedSeries) setRaw(name string, col []float64) {
	if _, exists := s.columns[name]; !exists {
		s.order = append(s.order, name)
	}
	s.columns[name] = col
}

// At returns the value of the named column on the i-th day.
func (s *UnifiedSeries) At(name string, i int) float64 {
	col, ok := s.columns[name]
	if !ok || i < 0 || i >= len(col) {
		return math.NaN()
	}
	return col[i]
}

// IsMissing reports whether a value is the explicit missing marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

package unify

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"geocli/pkg/contracts/domain"
)

// NamedSeries is one sparse input signal destined for the unified table.
// Order of the slice passed to Build fixes the column order of the
// result, which keeps exports byte-identical across reruns.
type NamedSeries struct {
	Name   string
	Values map[time.Time]float64
}

// Builder assembles calendar-aligned unified series out of independently
// sourced sparse signals.
type Builder struct {
	logger *slog.Logger
	// start/end clamp the calendar when non-zero; otherwise the index
	// spans the union of all source ranges.
	start time.Time
	end   time.Time
}

// NewBuilder creates a series builder covering the union of its inputs.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger}
}

// WithRange clamps the unified calendar to [start, end]. A zero start
// or end leaves that side at the union bound of the sources, so the
// range can be one-sided.
func (b *Builder) WithRange(start, end time.Time) *Builder {
	if !start.IsZero() {
		b.start = domain.Midnight(start)
	}
	if !end.IsZero() {
		b.end = domain.Midnight(end)
	}
	return b
}

// Build aligns every source onto one gap-free daily calendar and fills
// internal gaps by linear interpolation. Leading and trailing gaps stay
// missing: with no valid neighbour on one side there is nothing to
// interpolate towards, and zero would be a lie.
func (b *Builder) Build(sources []NamedSeries) (*domain.UnifiedSeries, error) {
	start, end, err := b.resolveRange(sources)
	if err != nil {
		return nil, err
	}

	series := domain.NewUnifiedSeries(start, end)
	for _, source := range sources {
		series.SetColumn(source.Name, source.Values)
		col, _ := series.Column(source.Name)
		filled := InterpolateLinear(col)
		series.SetColumnValues(source.Name, filled)
	}

	b.logger.Info("unified series built",
		slog.Time("start", start),
		slog.Time("end", end),
		slog.Int("days", series.Len()),
		slog.Int("signals", len(sources)))

	return series, nil
}

// resolveRange picks the calendar bounds: the union of all source date
// ranges, with either side overridden by a configured bound.
func (b *Builder) resolveRange(sources []NamedSeries) (time.Time, time.Time, error) {
	var start, end time.Time
	for _, source := range sources {
		for day := range source.Values {
			day = domain.Midnight(day)
			if start.IsZero() || day.Before(start) {
				start = day
			}
			if end.IsZero() || day.After(end) {
				end = day
			}
		}
	}

	if start.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("no dated observations in any source")
	}

	if !b.start.IsZero() {
		start = b.start
	}
	if !b.end.IsZero() {
		end = b.end
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("calendar end %s before start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	return start, end, nil
}

// InterpolateLinear fills internal NaN runs of a value slice by linear
// interpolation between the nearest valid neighbours. Leading and
// trailing NaNs are preserved.
func InterpolateLinear(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)

	prev := -1 // index of last valid value seen
	for i := 0; i < len(out); i++ {
		if math.IsNaN(out[i]) {
			continue
		}
		if prev != -1 && i-prev > 1 {
			step := (out[i] - out[prev]) / float64(i-prev)
			for j := prev + 1; j < i; j++ {
				out[j] = out[prev] + step*float64(j-prev)
			}
		}
		prev = i
	}

	return out
}

package analytics

import (
	"fmt"
	"log/slog"
	"math"

	"geocli/pkg/contracts/domain"
)

// RollingStdDev computes the trailing standard deviation of values over
// the given window. Positions whose window contains fewer than window
// valid points are missing. Sample (n-1) variance, matching the usual
// rolling-volatility convention.
func RollingStdDev(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if window < 2 {
		return out
	}

	for i := window - 1; i < len(values); i++ {
		var sum float64
		valid := true
		for j := i - window + 1; j <= i; j++ {
			if domain.IsMissing(values[j]) {
				valid = false
				break
			}
			sum += values[j]
		}
		if !valid {
			continue
		}

		mean := sum / float64(window)
		var ss float64
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - mean
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(window-1))
	}

	return out
}

// PercentReturns computes day-over-day percentage change. The first
// position, and any position whose own or previous value is missing or
// whose previous value is zero, is missing.
func PercentReturns(values []float64) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}

	for i := 1; i < len(values); i++ {
		prev, cur := values[i-1], values[i]
		if domain.IsMissing(prev) || domain.IsMissing(cur) || prev == 0 {
			continue
		}
		out[i] = (cur - prev) / prev * 100
	}

	return out
}

// Enricher derives rolling-volatility and returns columns for selected
// price signals of a unified series.
type Enricher struct {
	window int
	logger *slog.Logger
}

// NewEnricher creates an enricher with the given volatility window.
func NewEnricher(window int, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	if window < 2 {
		window = 7
	}
	return &Enricher{window: window, logger: logger}
}

// Enrich appends "<signal>_volatility_<window>d" and "<signal>_returns"
// columns for each named signal, in the order given. Unknown signals are
// an error so a typo in configuration cannot silently drop an analysis.
func (e *Enricher) Enrich(series *domain.UnifiedSeries, signals []string) error {
	for _, signal := range signals {
		values, ok := series.Column(signal)
		if !ok {
			return fmt.Errorf("cannot enrich unknown signal %q", signal)
		}

		volName := fmt.Sprintf("%s_volatility_%dd", signal, e.window)
		series.SetColumnValues(volName, RollingStdDev(values, e.window))
		series.SetColumnValues(signal+"_returns", PercentReturns(values))
	}

	e.logger.Info("series enriched",
		slog.Int("signals", len(signals)),
		slog.Int("volatility_window", e.window))

	return nil
}

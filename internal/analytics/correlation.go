package analytics

import (
	"fmt"
	"log/slog"
	"math"

	"geocli/pkg/contracts/domain"
)

// EngineConfig fixes the correlation sweep: which risk/market column
// pairs to evaluate, at which lag offsets, and how many overlapping valid
// samples a coefficient needs before it may be reported at all.
type EngineConfig struct {
	Pairs      []domain.SignalPair
	Lags       []int
	MinSamples int
}

// Engine computes lagged Pearson correlations over a unified series.
// It is a pure function of (series, config): no state, no randomness,
// and a fixed sweep order, so identical inputs always produce identical
// records.
type Engine struct {
	cfg    EngineConfig
	logger *slog.Logger
}

// NewEngine creates a correlation engine.
func NewEngine(cfg EngineConfig, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MinSamples < 2 {
		cfg.MinSamples = 2
	}
	return &Engine{cfg: cfg, logger: logger}
}

// Compute evaluates every configured (pair, lag) combination and returns
// the full record set, one record per triple, in sweep order. Pairs
// naming a column absent from the series are an error: a requested
// analysis over a missing source must fail loudly, not emit zeros.
func (e *Engine) Compute(series *domain.UnifiedSeries) ([]domain.CorrelationRecord, error) {
	records := make([]domain.CorrelationRecord, 0, len(e.cfg.Pairs)*len(e.cfg.Lags))
	undefined := 0

	for _, pair := range e.cfg.Pairs {
		risk, ok := series.Column(pair.Risk)
		if !ok {
			return nil, fmt.Errorf("risk signal %q not in unified series", pair.Risk)
		}
		market, ok := series.Column(pair.Market)
		if !ok {
			return nil, fmt.Errorf("market signal %q not in unified series", pair.Market)
		}

		for _, lag := range e.cfg.Lags {
			record := e.correlateAtLag(pair, risk, market, lag)
			if !record.Defined {
				undefined++
			}
			records = append(records, record)
		}
	}

	e.logger.Info("correlation sweep complete",
		slog.Int("records", len(records)),
		slog.Int("undefined", undefined))

	return records, nil
}

// correlateAtLag compares risk at day t against market at day t+lag over
// the overlapping window where both values are present.
func (e *Engine) correlateAtLag(pair domain.SignalPair, risk, market []float64, lag int) domain.CorrelationRecord {
	record := domain.CorrelationRecord{
		RiskSignal:   pair.Risk,
		MarketSignal: pair.Market,
		LagDays:      lag,
	}

	var xs, ys []float64
	for i := 0; i+lag < len(market) && i < len(risk); i++ {
		x, y := risk[i], market[i+lag]
		if domain.IsMissing(x) || domain.IsMissing(y) {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	record.Samples = len(xs)
	if record.Samples < e.cfg.MinSamples {
		// Too few overlapping points: undefined, never coerced to zero.
		record.Coefficient = math.NaN()
		return record
	}

	coefficient, ok := Pearson(xs, ys)
	if !ok {
		record.Coefficient = math.NaN()
		return record
	}

	record.Coefficient = coefficient
	record.Defined = true
	return record
}

// Pearson computes the Pearson correlation coefficient of two
// equal-length samples. Returns ok=false when either sample has zero
// variance (the coefficient is undefined, not zero).
func Pearson(xs, ys []float64) (float64, bool) {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return 0, false
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0, false
	}

	r := cov / math.Sqrt(varX*varY)
	// Clamp rounding spill so callers can rely on [-1, 1].
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, true
}

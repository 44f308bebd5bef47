package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"geocli/pkg/contracts/domain"
)

func TestInsightsReportRender(t *testing.T) {
	report := InsightsReport{
		DataThrough: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Correlations: []domain.CorrelationRecord{
			{RiskSignal: "conflicts", MarketSignal: "brent_price", LagDays: 28,
				Coefficient: 0.82, Samples: 120, Defined: true},
			{RiskSignal: "conflicts", MarketSignal: "btc_price", LagDays: 28,
				Coefficient: 0.31, Samples: 120, Defined: true},
			{RiskSignal: "conflicts", MarketSignal: "wti_price", LagDays: 0,
				Coefficient: -0.44, Samples: 120, Defined: true},
			{RiskSignal: "trade_policy_uncertainty", MarketSignal: "gpu_mid_index", LagDays: 7,
				Samples: 3, Defined: false},
		},
		Producers: []ProducerRisk{
			{Country: "DR Congo", Risk: 0.71, Conflict: 0.88, Band: RiskBandHigh},
			{Country: "Chile", Risk: 0.30, Conflict: 0.10, Band: RiskBandMedium},
		},
	}

	text := report.Render()

	assert.Contains(t, text, "Data through: 2026-08-01")
	assert.Contains(t, text, "conflicts -> brent_price: 0.820")
	assert.Contains(t, text, "conflicts -> wti_price: -0.440")
	assert.Contains(t, text, "1 pair/lag combinations had too few overlapping samples")
	assert.Contains(t, text, "DR Congo: risk 0.71")
	assert.NotContains(t, text, "Chile", "only high-band producers are called out")

	// Strongest lag-28 correlation is listed before the weaker one.
	assert.Less(t,
		strings.Index(text, "brent_price"),
		strings.Index(text, "btc_price"))
}

func TestInsightsReportRenderEmpty(t *testing.T) {
	report := InsightsReport{DataThrough: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	text := report.Render()

	assert.Contains(t, text, "No high-risk producers")
}

func TestInsightsReportRenderIsReproducible(t *testing.T) {
	report := InsightsReport{
		DataThrough: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Correlations: []domain.CorrelationRecord{
			{RiskSignal: "conflicts", MarketSignal: "brent_price", LagDays: 0,
				Coefficient: 0.5, Samples: 40, Defined: true},
		},
	}

	first := report.Render()
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, first, report.Render(), "rendering must not depend on the wall clock")
}

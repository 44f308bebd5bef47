package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geocli/internal/config"
	"geocli/pkg/contracts/domain"
)

func TestCategorySummary(t *testing.T) {
	observations := []domain.RiskObservation{
		{Country: "Chile", Date: day(1), Indicator: "geopolitical_risk", Value: 0.2,
			Tags: []string{config.TagStrategicMinerals}},
		{Country: "Chile", Date: day(2), Indicator: "geopolitical_risk", Value: 0.4,
			Tags: []string{config.TagStrategicMinerals}},
		{Country: "Australia", Date: day(1), Indicator: "geopolitical_risk", Value: 0.6,
			Tags: []string{config.TagStrategicMinerals}},
		{Country: "Turkey", Date: day(1), Indicator: "conflicts", Value: 0.5,
			Tags: []string{config.TagFinancialSystemic}},
	}

	stats := CategorySummary(observations)
	require.Len(t, stats, 2)

	// Vocabulary order puts strategic_minerals before financial_systemic.
	minerals := stats[0]
	assert.Equal(t, config.TagStrategicMinerals, minerals.Tag)
	assert.Equal(t, "geopolitical_risk", minerals.Indicator)
	assert.Equal(t, 2, minerals.Days)
	// Day 1 mean is (0.2+0.6)/2 = 0.4, day 2 is 0.4.
	assert.InDelta(t, 0.4, minerals.Mean, 1e-9)
	assert.InDelta(t, 0.4, minerals.Max, 1e-9)
	assert.InDelta(t, 0, minerals.StdDev, 1e-9)

	financial := stats[1]
	assert.Equal(t, config.TagFinancialSystemic, financial.Tag)
	assert.Equal(t, "conflicts", financial.Indicator)
	assert.Equal(t, 1, financial.Days)
	assert.InDelta(t, 0.5, financial.Mean, 1e-9)
}

func TestCategorySummaryIsDeterministic(t *testing.T) {
	// Mixed magnitudes make float accumulation order visible: if the
	// daily values were summed in map order the bit pattern of the mean
	// would differ between runs.
	values := []float64{1e15, 0.1, -1e15, 0.2, 3.7, 1e8, -0.3, 42.42, 7e-3, 1e12}
	var observations []domain.RiskObservation
	for i, v := range values {
		observations = append(observations, domain.RiskObservation{
			Country: "Chile", Date: day(i + 1), Indicator: "geopolitical_risk",
			Value: v, Tags: []string{config.TagStrategicMinerals},
		})
	}

	first := CategorySummary(observations)
	require.Len(t, first, 1)

	for i := 0; i < 50; i++ {
		again := CategorySummary(observations)
		require.Len(t, again, 1)
		assert.Equal(t, math.Float64bits(first[0].Mean), math.Float64bits(again[0].Mean))
		assert.Equal(t, math.Float64bits(first[0].StdDev), math.Float64bits(again[0].StdDev))
	}
}

func TestCategorySummaryUnknownIndicatorAppended(t *testing.T) {
	observations := []domain.RiskObservation{
		{Country: "Chile", Date: day(1), Indicator: "zz_custom", Value: 1,
			Tags: []string{config.TagStrategicMinerals}},
		{Country: "Chile", Date: day(1), Indicator: "conflicts", Value: 2,
			Tags: []string{config.TagStrategicMinerals}},
	}

	stats := CategorySummary(observations)
	require.Len(t, stats, 2)
	assert.Equal(t, "conflicts", stats[0].Indicator, "canonical indicators first")
	assert.Equal(t, "zz_custom", stats[1].Indicator)
}

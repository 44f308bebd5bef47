package analytics

import (
	"math"
	"sort"
	"time"

	"geocli/internal/config"
	"geocli/internal/unify"
	"geocli/pkg/contracts/domain"
)

// CategoryStats summarises one risk indicator across the countries
// carrying one role tag.
type CategoryStats struct {
	Tag       string  `json:"tag"`
	Indicator string  `json:"indicator"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"std_dev"`
	Max       float64 `json:"max"`
	Days      int     `json:"days"`
}

// CategorySummary computes, for every role tag in the vocabulary and
// every indicator present in the observations, summary statistics over
// the per-day cross-country means. Order is vocabulary order then
// indicator order, so output tables are stable.
func CategorySummary(observations []domain.RiskObservation) []CategoryStats {
	indicators := presentIndicators(observations)

	var out []CategoryStats
	for _, tag := range config.RoleTags {
		tagged := unify.FilterByTag(observations, tag)
		if len(tagged) == 0 {
			continue
		}
		for _, indicator := range indicators {
			daily := unify.AggregateDaily(tagged, indicator)
			if len(daily) == 0 {
				continue
			}
			mean, std, max := describe(daily)
			out = append(out, CategoryStats{
				Tag:       tag,
				Indicator: indicator,
				Mean:      mean,
				StdDev:    std,
				Max:       max,
				Days:      len(daily),
			})
		}
	}

	return out
}

// presentIndicators returns the known indicators that actually occur in
// the observations, in canonical order.
func presentIndicators(observations []domain.RiskObservation) []string {
	seen := make(map[string]bool)
	for _, obs := range observations {
		seen[obs.Indicator] = true
	}

	var out []string
	for _, indicator := range config.RiskIndicators {
		if seen[indicator] {
			out = append(out, indicator)
		}
	}
	// Indicators outside the canonical list still get summarised,
	// appended alphabetically.
	var extra []string
	for indicator := range seen {
		if !containsString(config.RiskIndicators, indicator) {
			extra = append(extra, indicator)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// describe computes mean, sample standard deviation and max of a daily
// value map. Values are accumulated in date order: float addition is
// order-sensitive, and map iteration order would make the summary table
// drift between reruns.
func describe(daily map[time.Time]float64) (mean, std, max float64) {
	n := len(daily)
	if n == 0 {
		return 0, 0, 0
	}

	days := make([]time.Time, 0, n)
	for day := range daily {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	max = math.Inf(-1)
	var sum float64
	for _, day := range days {
		v := daily[day]
		sum += v
		if v > max {
			max = v
		}
	}
	mean = sum / float64(n)

	if n > 1 {
		var ss float64
		for _, day := range days {
			d := daily[day] - mean
			ss += d * d
		}
		std = math.Sqrt(ss / float64(n-1))
	}

	return mean, std, max
}

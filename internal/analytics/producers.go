package analytics

import (
	"sort"

	"geocli/internal/config"
	"geocli/internal/unify"
	"geocli/pkg/contracts/domain"
)

// Risk bands for producer classification.
const (
	RiskBandHigh   = "HIGH"
	RiskBandMedium = "MEDIUM"
	RiskBandLow    = "LOW"

	highRiskThreshold   = 0.5
	mediumRiskThreshold = 0.0
)

// ProducerRisk is the averaged risk profile of one strategic-minerals
// producer country.
type ProducerRisk struct {
	Country  string  `json:"country"`
	Risk     float64 `json:"geopolitical_risk"`
	Conflict float64 `json:"conflicts"`
	Band     string  `json:"band"`
}

// RankProducers averages geopolitical risk and conflict levels per
// strategic-minerals producer and ranks them riskiest first. Ties break
// by country name so the ranking is deterministic.
func RankProducers(observations []domain.RiskObservation) []ProducerRisk {
	producers := unify.FilterByTag(observations, config.TagStrategicMinerals)

	type acc struct {
		riskSum, conflictSum     float64
		riskCount, conflictCount int
	}
	byCountry := make(map[string]*acc)

	for _, obs := range producers {
		a, ok := byCountry[obs.Country]
		if !ok {
			a = &acc{}
			byCountry[obs.Country] = a
		}
		switch obs.Indicator {
		case "geopolitical_risk":
			a.riskSum += obs.Value
			a.riskCount++
		case "conflicts":
			a.conflictSum += obs.Value
			a.conflictCount++
		}
	}

	out := make([]ProducerRisk, 0, len(byCountry))
	for country, a := range byCountry {
		p := ProducerRisk{Country: country}
		if a.riskCount > 0 {
			p.Risk = a.riskSum / float64(a.riskCount)
		}
		if a.conflictCount > 0 {
			p.Conflict = a.conflictSum / float64(a.conflictCount)
		}
		p.Band = riskBand(p.Risk)
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Risk != out[j].Risk {
			return out[i].Risk > out[j].Risk
		}
		return out[i].Country < out[j].Country
	})

	return out
}

func riskBand(risk float64) string {
	switch {
	case risk > highRiskThreshold:
		return RiskBandHigh
	case risk > mediumRiskThreshold:
		return RiskBandMedium
	default:
		return RiskBandLow
	}
}

package unify

import (
	"log/slog"
	"time"

	"geocli/internal/config"
	"geocli/pkg/contracts/domain"
)

// Tagger attaches systemic role tags to country-keyed observations.
type Tagger struct {
	logger *slog.Logger
	tags   map[string][]string
}

// NewTagger creates a tagger over the fixed country vocabulary.
func NewTagger(logger *slog.Logger) *Tagger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tagger{logger: logger, tags: config.CountryTags}
}

// Tag returns a copy of the observations with role tags attached. A
// country missing from the vocabulary gets the single "untagged" tag
// rather than being dropped. Tags are set exactly once, at ingestion.
func (t *Tagger) Tag(observations []domain.RiskObservation) []domain.RiskObservation {
	untagged := make(map[string]bool)

	out := make([]domain.RiskObservation, len(observations))
	for i, obs := range observations {
		tags, ok := t.tags[obs.Country]
		if !ok {
			tags = []string{config.TagUntagged}
			untagged[obs.Country] = true
		}
		obs.Tags = append([]string(nil), tags...)
		out[i] = obs
	}

	if len(untagged) > 0 {
		countries := make([]string, 0, len(untagged))
		for country := range untagged {
			countries = append(countries, country)
		}
		t.logger.Warn("countries outside role vocabulary",
			slog.Int("count", len(untagged)),
			slog.Any("countries", countries))
	}

	return out
}

// AggregateDaily reduces long-form country observations of one indicator
// to a single daily signal: the cross-country arithmetic mean.
func AggregateDaily(observations []domain.RiskObservation, indicator string) map[time.Time]float64 {
	sums := make(map[time.Time]float64)
	counts := make(map[time.Time]int)

	for _, obs := range observations {
		if obs.Indicator != indicator {
			continue
		}
		day := domain.Midnight(obs.Date)
		sums[day] += obs.Value
		counts[day]++
	}

	out := make(map[time.Time]float64, len(sums))
	for day, sum := range sums {
		out[day] = sum / float64(counts[day])
	}
	return out
}

// FilterByTag keeps only the observations of countries carrying the
// given role tag.
func FilterByTag(observations []domain.RiskObservation, tag string) []domain.RiskObservation {
	var out []domain.RiskObservation
	for _, obs := range observations {
		if obs.HasTag(tag) {
			out = append(out, obs)
		}
	}
	return out
}

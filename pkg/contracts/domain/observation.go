package domain

import "time"

// Observation is a single raw data point read from a source table.
// EntityID identifies a country or instrument; Tags are attached at
// ingestion time and never mutated afterwards.
type Observation struct {
	EntityID string    `json:"entity_id"`
	Date     time.Time `json:"date"`
	Value    float64   `json:"value"`
	Tags     []string  `json:"tags,omitempty"`
}

// HasTag reports whether the observation carries the given role tag.
func (o Observation) HasTag(tag string) bool {
	for _, t := range o.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// RiskObservation is one country/day row of the geopolitical indicator set.
type RiskObservation struct {
	Country   string    `json:"country"`
	Date      time.Time `json:"date"`
	Indicator string    `json:"indicator"`
	Value     float64   `json:"value"`
	Tags      []string  `json:"tags,omitempty"`
}

// HasTag reports whether the observation's country carries the given
// role tag.
func (o RiskObservation) HasTag(tag string) bool {
	for _, t := range o.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

package domain

import "fmt"

// CorrelationRecord is the lagged Pearson result for one
// (risk signal, market signal, lag) triple. Defined is false when fewer
// overlapping valid samples existed than the configured minimum; in that
// case Coefficient carries no meaning and must not be read as zero.
type CorrelationRecord struct {
	RiskSignal   string  `json:"risk_signal"`
	MarketSignal string  `json:"market_signal"`
	LagDays      int     `json:"lag_days"`
	Coefficient  float64 `json:"coefficient"`
	Samples      int     `json:"samples"`
	Defined      bool    `json:"defined"`
}

// Key returns the uniqueness key of the record. At most one record may
// exist per key in an engine result set.
func (r CorrelationRecord) Key() string {
	return fmt.Sprintf("%s|%s|%d", r.RiskSignal, r.MarketSignal, r.LagDays)
}

// SignalPair names one risk/market column pairing to evaluate.
type SignalPair struct {
	Risk   string `json:"risk" yaml:"risk"`
	Market string `json:"market" yaml:"market"`
}

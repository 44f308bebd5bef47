package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"geocli/pkg/contracts/domain"
)

// InsightsReport synthesises the correlation sweep and producer ranking
// into a plain-text analyst summary written next to the CSV tables.
// DataThrough is the last day of the analysed calendar; the header is
// derived from it rather than the wall clock so that reruns over
// unchanged inputs reproduce the file byte for byte.
type InsightsReport struct {
	DataThrough  time.Time
	Correlations []domain.CorrelationRecord
	Producers    []ProducerRisk
	TopN         int
}

// Render produces the report text. Output depends only on the inputs,
// never on map iteration order or the wall clock.
func (r InsightsReport) Render() string {
	topN := r.TopN
	if topN <= 0 {
		topN = 5
	}

	var b strings.Builder
	line := strings.Repeat("=", 72)

	fmt.Fprintf(&b, "%s\nGEOPOLITICAL RISK ANALYTICS - INSIGHTS REPORT\n%s\n\n", line, line)
	fmt.Fprintf(&b, "Data through: %s\n\n", r.DataThrough.UTC().Format("2006-01-02"))

	b.WriteString("1. KEY CORRELATIONS\n")
	b.WriteString(strings.Repeat("-", 72) + "\n")
	r.writeTopCorrelations(&b, 28, topN, "Strongest 4-week lagged correlations:")
	r.writeTopCorrelations(&b, 0, topN, "Strongest immediate correlations (lag 0):")

	undefined := 0
	for _, rec := range r.Correlations {
		if !rec.Defined {
			undefined++
		}
	}
	if undefined > 0 {
		fmt.Fprintf(&b, "\n%d pair/lag combinations had too few overlapping samples and are undefined.\n", undefined)
	}
	b.WriteString("\n")

	b.WriteString("2. STRATEGIC MINERAL PRODUCER RISK\n")
	b.WriteString(strings.Repeat("-", 72) + "\n")
	wroteProducer := false
	for _, producer := range r.Producers {
		if producer.Band != RiskBandHigh {
			continue
		}
		fmt.Fprintf(&b, "  * %s: risk %.2f, conflict %.2f [%s]\n",
			producer.Country, producer.Risk, producer.Conflict, producer.Band)
		wroteProducer = true
	}
	if !wroteProducer {
		b.WriteString("  No high-risk producers in the analysed window.\n")
	}

	return b.String()
}

func (r InsightsReport) writeTopCorrelations(b *strings.Builder, lag, topN int, heading string) {
	var atLag []domain.CorrelationRecord
	for _, rec := range r.Correlations {
		if rec.LagDays == lag && rec.Defined {
			atLag = append(atLag, rec)
		}
	}
	if len(atLag) == 0 {
		return
	}

	sort.Slice(atLag, func(i, j int) bool {
		if atLag[i].Coefficient != atLag[j].Coefficient {
			return atLag[i].Coefficient > atLag[j].Coefficient
		}
		return atLag[i].Key() < atLag[j].Key()
	})

	fmt.Fprintf(b, "\n%s\n", heading)
	for i, rec := range atLag {
		if i >= topN {
			break
		}
		fmt.Fprintf(b, "  * %s -> %s: %.3f (n=%d)\n",
			rec.RiskSignal, rec.MarketSignal, rec.Coefficient, rec.Samples)
	}
}

package hardware

import (
	"log/slog"
	"sort"
	"time"

	"geocli/pkg/contracts/domain"
)

// TierIndex is the daily price index of one tier: the arithmetic mean of
// all listing prices mapped to the tier on each day. Days with no
// listings are absent and fall under the normal gap-fill policy later.
type TierIndex struct {
	Kind   domain.ListingKind
	Tier   domain.Tier
	Signal string
	Values map[time.Time]float64
	// Listings counts the raw rows behind each day's mean.
	Listings map[time.Time]int
}

// IndexBuilder turns raw heterogeneous listings into per-tier daily
// price indices.
type IndexBuilder struct {
	logger *slog.Logger
}

// NewIndexBuilder creates an index builder.
func NewIndexBuilder(logger *slog.Logger) *IndexBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &IndexBuilder{logger: logger}
}

// Build aggregates listings into tier indices, ordered deterministically
// by signal name. Listings that classify into no tier are skipped.
func (b *IndexBuilder) Build(listings []domain.Listing) []TierIndex {
	type bucket struct {
		kind  domain.ListingKind
		tier  domain.Tier
		sums  map[time.Time]float64
		count map[time.Time]int
	}
	buckets := make(map[string]*bucket)

	skipped := 0
	for _, listing := range listings {
		tiers := Classify(listing)
		if len(tiers) == 0 {
			skipped++
			continue
		}
		day := domain.Midnight(listing.Date)
		for _, tier := range tiers {
			signal := SignalName(listing.Kind, tier)
			bk, ok := buckets[signal]
			if !ok {
				bk = &bucket{
					kind:  listing.Kind,
					tier:  tier,
					sums:  make(map[time.Time]float64),
					count: make(map[time.Time]int),
				}
				buckets[signal] = bk
			}
			bk.sums[day] += listing.Price
			bk.count[day]++
		}
	}

	signals := make([]string, 0, len(buckets))
	for signal := range buckets {
		signals = append(signals, signal)
	}
	sort.Strings(signals)

	indices := make([]TierIndex, 0, len(signals))
	for _, signal := range signals {
		bk := buckets[signal]
		values := make(map[time.Time]float64, len(bk.sums))
		for day, sum := range bk.sums {
			values[day] = sum / float64(bk.count[day])
		}
		indices = append(indices, TierIndex{
			Kind:     bk.kind,
			Tier:     bk.tier,
			Signal:   signal,
			Values:   values,
			Listings: bk.count,
		})
	}

	b.logger.Info("tier indices built",
		slog.Int("listings", len(listings)),
		slog.Int("skipped_unclassified", skipped),
		slog.Int("indices", len(indices)))

	return indices
}

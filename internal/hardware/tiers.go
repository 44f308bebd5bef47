package hardware

import (
	"strings"

	"geocli/pkg/contracts/domain"
)

// GPU capacity thresholds in GB. Buckets are contiguous so every listing
// with a known capacity lands somewhere: a 10GB card is mid, never entry
// or high-end.
const (
	gpuEntryMaxGB      = 6
	gpuMidMaxGB        = 12
	gpuEnthusiastMinGB = 24
)

// ClassifyGPU maps a GPU listing to its capacity tier.
// Listings without a parseable capacity are unclassified and excluded
// from the price indices.
func ClassifyGPU(listing domain.Listing) domain.Tier {
	switch {
	case listing.CapacityGB <= 0:
		return domain.TierUnclassified
	case listing.CapacityGB <= gpuEntryMaxGB:
		return domain.TierEntry
	case listing.CapacityGB <= gpuMidMaxGB:
		return domain.TierMid
	case listing.CapacityGB < gpuEnthusiastMinGB:
		return domain.TierHighEnd
	default:
		return domain.TierEnthusiast
	}
}

// ClassifyRAM maps a RAM listing to every index it contributes to: one
// capacity bucket (16GB/32GB) and one generation bucket (DDR4/DDR5) when
// the title names them. A kit can legitimately appear in two indices.
func ClassifyRAM(listing domain.Listing) []domain.Tier {
	var tiers []domain.Tier

	switch listing.CapacityGB {
	case 16:
		tiers = append(tiers, domain.TierRAM16)
	case 32:
		tiers = append(tiers, domain.TierRAM32)
	}

	title := strings.ToLower(listing.Title)
	if strings.Contains(title, "ddr5") {
		tiers = append(tiers, domain.TierDDR5)
	} else if strings.Contains(title, "ddr4") {
		tiers = append(tiers, domain.TierDDR4)
	}

	return tiers
}

// Classify returns the tiers a listing contributes to, by kind.
func Classify(listing domain.Listing) []domain.Tier {
	switch listing.Kind {
	case domain.ListingGPU:
		if tier := ClassifyGPU(listing); tier != domain.TierUnclassified {
			return []domain.Tier{tier}
		}
		return nil
	case domain.ListingRAM:
		return ClassifyRAM(listing)
	default:
		return nil
	}
}

// SignalName returns the unified-series column name of a tier index.
func SignalName(kind domain.ListingKind, tier domain.Tier) string {
	switch kind {
	case domain.ListingGPU:
		return "gpu_" + string(tier) + "_index"
	case domain.ListingRAM:
		// RAM tier constants already carry the ram_ prefix.
		return string(tier) + "_index"
	default:
		return string(tier) + "_index"
	}
}

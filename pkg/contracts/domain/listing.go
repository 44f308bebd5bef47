package domain

import "time"

// ListingKind distinguishes the hardware listing families that get tiered
// into price indices.
type ListingKind string

const (
	ListingGPU ListingKind = "gpu"
	ListingRAM ListingKind = "ram"
)

// Listing is one raw hardware product listing row (GPU or RAM) before
// tier classification.
type Listing struct {
	Source     string      `json:"source"`
	Date       time.Time   `json:"date"`
	Title      string      `json:"title"`
	Price      float64     `json:"price"`
	CapacityGB int         `json:"capacity_gb"`
	Kind       ListingKind `json:"kind"`
}

// Tier is a coarse capacity bucket used to aggregate heterogeneous
// listings into one daily price index per bucket.
type Tier string

const (
	TierEntry      Tier = "entry"
	TierMid        Tier = "mid"
	TierHighEnd    Tier = "high_end"
	TierEnthusiast Tier = "enthusiast"

	TierRAM16 Tier = "ram_16gb"
	TierRAM32 Tier = "ram_32gb"
	TierDDR4  Tier = "ram_ddr4"
	TierDDR5  Tier = "ram_ddr5"

	TierUnclassified Tier = "unclassified"
)

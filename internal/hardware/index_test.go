package hardware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geocli/pkg/contracts/domain"
)

func day(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestIndexBuilderBuild(t *testing.T) {
	listings := []domain.Listing{
		{Kind: domain.ListingGPU, CapacityGB: 8, Price: 300, Date: day(1)},
		{Kind: domain.ListingGPU, CapacityGB: 12, Price: 500, Date: day(1)},
		{Kind: domain.ListingGPU, CapacityGB: 8, Price: 320, Date: day(2)},
		{Kind: domain.ListingGPU, CapacityGB: 24, Price: 1600, Date: day(1)},
		// No capacity: contributes to nothing.
		{Kind: domain.ListingGPU, CapacityGB: 0, Price: 99, Date: day(1)},
	}

	indices := NewIndexBuilder(nil).Build(listings)
	require.Len(t, indices, 2)

	// Signals come back sorted.
	assert.Equal(t, "gpu_enthusiast_index", indices[0].Signal)
	assert.Equal(t, "gpu_mid_index", indices[1].Signal)

	mid := indices[1]
	assert.InDelta(t, 400, mid.Values[day(1)], 1e-9, "day one mean of 300 and 500")
	assert.InDelta(t, 320, mid.Values[day(2)], 1e-9)
	assert.Equal(t, 2, mid.Listings[day(1)])

	// Empty tier-day is absent, not zero.
	_, ok := indices[0].Values[day(2)]
	assert.False(t, ok)
}

func TestIndexBuilderRAMDualContribution(t *testing.T) {
	listings := []domain.Listing{
		{Kind: domain.ListingRAM, Title: "32GB DDR5 kit", CapacityGB: 32, Price: 120, Date: day(1)},
	}

	indices := NewIndexBuilder(nil).Build(listings)
	require.Len(t, indices, 2)

	// One physical listing feeds both the capacity and generation index.
	assert.Equal(t, "ram_32gb_index", indices[0].Signal)
	assert.Equal(t, "ram_ddr5_index", indices[1].Signal)
	assert.InDelta(t, 120, indices[0].Values[day(1)], 1e-9)
	assert.InDelta(t, 120, indices[1].Values[day(1)], 1e-9)
}

package ingest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"geocli/pkg/contracts/domain"
)

func TestListingReaderCSV(t *testing.T) {
	dir := t.TempDir()

	t.Run("header discovery and row parsing", func(t *testing.T) {
		path := writeFile(t, dir, "gpu-deals_2026-01-15.csv",
			"Product Name,Price,Posted\n"+
				"RTX 4070 12GB,$599.99,2026-01-14\n"+
				"RX 7600 8 GB,269,2026-01-14\n"+
				"Mystery card,free,2026-01-14\n")

		reader := NewListingReader(nil)
		listings, stats, err := reader.ReadFile(path, domain.ListingGPU)
		require.NoError(t, err)

		assert.Equal(t, 2, stats.Parsed)
		assert.Equal(t, 1, stats.Dropped)
		require.Len(t, listings, 2)

		assert.Equal(t, "RTX 4070 12GB", listings[0].Title)
		assert.InDelta(t, 599.99, listings[0].Price, 1e-9)
		assert.Equal(t, 12, listings[0].CapacityGB)
		assert.Equal(t, day(2026, 1, 14), listings[0].Date)
		assert.Equal(t, domain.ListingGPU, listings[0].Kind)

		assert.Equal(t, 8, listings[1].CapacityGB)
	})

	t.Run("snapshot date from filename when no date column", func(t *testing.T) {
		path := writeFile(t, dir, "ram-deals_2026-02-01.csv",
			"Title,Amount\n"+
				"Corsair 32GB DDR5,129.99\n")

		reader := NewListingReader(nil)
		listings, _, err := reader.ReadFile(path, domain.ListingRAM)
		require.NoError(t, err)

		require.Len(t, listings, 1)
		assert.Equal(t, day(2026, 2, 1), listings[0].Date)
		assert.Equal(t, 32, listings[0].CapacityGB)
	})

	t.Run("no price column is fatal", func(t *testing.T) {
		path := writeFile(t, dir, "broken_2026-02-01.csv",
			"Title,Stock\nThing,5\n")

		reader := NewListingReader(nil)
		_, _, err := reader.ReadFile(path, domain.ListingGPU)
		assert.Error(t, err)
	})
}

func TestListingReaderXLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gpu-snapshot_2026-03-01.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Model", "Price", "Date"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"RTX 4090 24GB", "$1,599", "2026-02-28"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"GTX 1650 4GB", "149.50", "2026-02-28"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	reader := NewListingReader(nil)
	listings, stats, err := reader.ReadFile(path, domain.ListingGPU)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Parsed)
	require.Len(t, listings, 2)
	assert.InDelta(t, 1599, listings[0].Price, 1e-9)
	assert.Equal(t, 24, listings[0].CapacityGB)
	assert.Equal(t, 4, listings[1].CapacityGB)
}

func TestCapacityFromTitle(t *testing.T) {
	tests := []struct {
		title string
		want  int
	}{
		{"RTX 4070 12GB GDDR6X", 12},
		{"16 GB DDR5 kit", 16},
		{"8gb budget card", 8},
		{"no capacity here", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, capacityFromTitle(tt.title), tt.title)
	}
}

func TestSnapshotDateFromName(t *testing.T) {
	got := snapshotDateFromName("gpu-deals_2026-01-15.csv")
	assert.Equal(t, day(2026, 1, 15), got)

	assert.True(t, snapshotDateFromName("nodate.csv").IsZero())
}

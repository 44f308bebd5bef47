package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geocli/internal/config"
)

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readTable(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	return rows
}

// fixturePaths lays down a small but complete source tree: two risk
// indicators, one energy feed, the crypto feed and one GPU snapshot,
// all covering the first ten days of January 2026.
func fixturePaths(t *testing.T) *config.Paths {
	t.Helper()
	paths := config.PathsFrom(t.TempDir())
	require.NoError(t, paths.EnsureDirectories())

	var risk strings.Builder
	risk.WriteString("date;Russia;Chile\n")
	for d := 1; d <= 10; d++ {
		fmt.Fprintf(&risk, "2026-01-%02d;%0.2f;%0.2f\n", d, 0.5+float64(d)*0.03, 0.2+float64(d)*0.01)
	}
	writeFixture(t, filepath.Join(paths.RiskDir, "geopolitical_risk.csv"), risk.String())

	var conflicts strings.Builder
	conflicts.WriteString("date;Russia;Chile\n")
	for d := 1; d <= 10; d++ {
		fmt.Fprintf(&conflicts, "2026-01-%02d;%0.2f;%0.2f\n", d, 0.8-float64(d)*0.02, 0.1)
	}
	writeFixture(t, filepath.Join(paths.RiskDir, "conflicts.csv"), conflicts.String())

	var brent strings.Builder
	brent.WriteString("Energy feed\nbanner row\nTrade Date,Settlement Price\n")
	for d := 1; d <= 10; d++ {
		fmt.Fprintf(&brent, "2026-01-%02d,%0.2f\n", d, 75+float64(d)*0.5)
	}
	writeFixture(t, filepath.Join(paths.EnergyDir, "brent.csv"), brent.String())

	var btc strings.Builder
	btc.WriteString("date,price\n")
	for d := 1; d <= 10; d++ {
		fmt.Fprintf(&btc, "2026-01-%02dT00:00:00Z,%0.2f\n", d, 42000-float64(d)*100)
	}
	writeFixture(t, filepath.Join(paths.CryptoDir, "btc.csv"), btc.String())

	var gpu strings.Builder
	gpu.WriteString("Product,Price,Date\n")
	for d := 1; d <= 10; d++ {
		fmt.Fprintf(&gpu, "RTX 4070 12GB,%0.2f,2026-01-%02d\n", 600-float64(d)*2, d)
		fmt.Fprintf(&gpu, "RTX 4060 8GB,%0.2f,2026-01-%02d\n", 300+float64(d), d)
	}
	writeFixture(t, filepath.Join(paths.HardwareDir, "gpu-deals_2026-01-10.csv"), gpu.String())

	return paths
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Analysis.Lags = []int{0, 2}
	cfg.Analysis.MinSamples = 3
	return cfg
}

func TestPipelineServiceRun(t *testing.T) {
	paths := fixturePaths(t)
	service := NewPipelineService(testConfig(), paths, nil)

	summary, err := service.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, summary.Days)
	// 2 risk + 3 market + (vol+returns) per market signal.
	assert.Equal(t, 2+3+3*2, summary.Signals)
	// 2 risk signals x 3 market signals x 2 lags.
	assert.Equal(t, 12, summary.Correlations)

	for _, path := range []string{
		paths.UnifiedCSV,
		paths.EnrichedCSV,
		paths.CorrelationCSV,
		paths.GPUIndexCSV,
		paths.RAMIndexCSV,
		paths.CategoryCSV,
		paths.ProducerRiskCSV,
		paths.InsightsTXT,
	} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}
}

func TestPipelineServiceRunTables(t *testing.T) {
	paths := fixturePaths(t)
	service := NewPipelineService(testConfig(), paths, nil)

	_, err := service.Run(context.Background())
	require.NoError(t, err)

	t.Run("unified table layout", func(t *testing.T) {
		rows := readTable(t, paths.UnifiedCSV)
		require.Len(t, rows, 11)
		assert.Equal(t, []string{
			"date", "geopolitical_risk", "conflicts",
			"brent_price", "btc_price", "gpu_mid_index",
		}, rows[0])
		assert.Equal(t, "2026-01-01", rows[1][0])
	})

	t.Run("correlation table defined everywhere", func(t *testing.T) {
		rows := readTable(t, paths.CorrelationCSV)
		require.Len(t, rows, 13)
		for _, row := range rows[1:] {
			assert.Equal(t, "true", row[5], "row %v", row)
			assert.NotEmpty(t, row[3])
		}
	})

	t.Run("gpu index daily mean", func(t *testing.T) {
		rows := readTable(t, paths.GPUIndexCSV)
		require.Len(t, rows, 11)
		assert.Equal(t, "gpu_mid_index", rows[0][1])
		// Day one: mean of 598 and 301.
		assert.Equal(t, "449.50", rows[1][1])
	})

	t.Run("producer ranking covers minerals countries", func(t *testing.T) {
		rows := readTable(t, paths.ProducerRiskCSV)
		require.Len(t, rows, 2)
		assert.Equal(t, "Chile", rows[1][0])
	})

	t.Run("insights report names strongest pairs", func(t *testing.T) {
		data, err := os.ReadFile(paths.InsightsTXT)
		require.NoError(t, err)
		assert.Contains(t, string(data), "INSIGHTS REPORT")
		assert.Contains(t, string(data), "Data through: 2026-01-10")
	})
}

func TestPipelineServiceRunRerunsAreIdentical(t *testing.T) {
	paths := fixturePaths(t)
	service := NewPipelineService(testConfig(), paths, nil)

	outputs := []string{
		paths.UnifiedCSV,
		paths.EnrichedCSV,
		paths.CorrelationCSV,
		paths.GPUIndexCSV,
		paths.RAMIndexCSV,
		paths.CategoryCSV,
		paths.ProducerRiskCSV,
		paths.InsightsTXT,
	}

	_, err := service.Run(context.Background())
	require.NoError(t, err)
	first := make(map[string][]byte, len(outputs))
	for _, path := range outputs {
		data, err := os.ReadFile(path)
		require.NoError(t, err, path)
		first[path] = data
	}

	// A later rerun over unchanged inputs must reproduce every output
	// byte for byte, the text report included.
	time.Sleep(1100 * time.Millisecond)
	_, err = service.Run(context.Background())
	require.NoError(t, err)
	for _, path := range outputs {
		second, err := os.ReadFile(path)
		require.NoError(t, err, path)
		assert.Equal(t, first[path], second, path)
	}
}

func TestPipelineServiceRunMissingRiskSources(t *testing.T) {
	paths := config.PathsFrom(t.TempDir())
	require.NoError(t, paths.EnsureDirectories())

	service := NewPipelineService(testConfig(), paths, nil)
	_, err := service.Run(context.Background())
	assert.ErrorContains(t, err, "no risk indicator sources")
}

func TestPipelineServiceRunConfiguredRange(t *testing.T) {
	paths := fixturePaths(t)
	cfg := testConfig()
	cfg.Analysis.StartDate = "2026-01-03"
	cfg.Analysis.EndDate = "2026-01-08"

	service := NewPipelineService(cfg, paths, nil)
	summary, err := service.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, summary.Days)
}

func TestPipelineServiceRunStartDateOnly(t *testing.T) {
	paths := fixturePaths(t)
	cfg := testConfig()
	cfg.Analysis.StartDate = "2026-01-06"

	service := NewPipelineService(cfg, paths, nil)
	summary, err := service.Run(context.Background())
	require.NoError(t, err)

	// Jan 6 through the last source day, Jan 10.
	assert.Equal(t, 5, summary.Days)
}

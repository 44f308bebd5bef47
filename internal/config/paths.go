package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths is the single source of truth for all file paths used by the
// pipeline and the results server. Everything resolves relative to the
// executable directory, never the current working directory.
type Paths struct {
	ExecutableDir string
	DataDir       string
	ResultsDir    string
	LogsDir       string

	// Source subdirectories
	RiskDir     string
	EnergyDir   string
	HardwareDir string
	CryptoDir   string

	// Well-known output tables. These names are the contract with the
	// downstream presentation layer; renaming one is a breaking change.
	UnifiedCSV      string
	EnrichedCSV     string
	CorrelationCSV  string
	GPUIndexCSV     string
	RAMIndexCSV     string
	CategoryCSV     string
	ProducerRiskCSV string
	InsightsTXT     string
}

// GetPaths returns the application paths relative to the executable
// location.
//
// Directory layout:
//
//	data/
//	  risk/      (geopolitical indicator CSVs)
//	  energy/    (Brent/WTI daily CSVs)
//	  hardware/  (GPU/RAM listing CSV or XLSX snapshots)
//	  crypto/    (BTC daily CSV)
//	results/     (generated output tables, regenerated wholesale each run)
//	logs/
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return PathsFrom(filepath.Dir(exe)), nil
}

// PathsFrom builds the path set rooted at the given base directory.
// Tests use this to root everything under a temp dir.
func PathsFrom(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	resultsDir := filepath.Join(baseDir, "results")

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		ResultsDir:    resultsDir,
		LogsDir:       filepath.Join(baseDir, "logs"),

		RiskDir:     filepath.Join(dataDir, "risk"),
		EnergyDir:   filepath.Join(dataDir, "energy"),
		HardwareDir: filepath.Join(dataDir, "hardware"),
		CryptoDir:   filepath.Join(dataDir, "crypto"),

		UnifiedCSV:      filepath.Join(resultsDir, "unified_timeseries.csv"),
		EnrichedCSV:     filepath.Join(resultsDir, "unified_timeseries_enriched.csv"),
		CorrelationCSV:  filepath.Join(resultsDir, "correlation_records.csv"),
		GPUIndexCSV:     filepath.Join(resultsDir, "gpu_price_index.csv"),
		RAMIndexCSV:     filepath.Join(resultsDir, "ram_price_index.csv"),
		CategoryCSV:     filepath.Join(resultsDir, "category_summary.csv"),
		ProducerRiskCSV: filepath.Join(resultsDir, "producer_risk.csv"),
		InsightsTXT:     filepath.Join(resultsDir, "insights.txt"),
	}
}

// WithDataDir rebases the data directory and its source subdirectories.
func (p *Paths) WithDataDir(dir string) *Paths {
	p.DataDir = dir
	p.RiskDir = filepath.Join(dir, "risk")
	p.EnergyDir = filepath.Join(dir, "energy")
	p.HardwareDir = filepath.Join(dir, "hardware")
	p.CryptoDir = filepath.Join(dir, "crypto")
	return p
}

// WithResultsDir rebases the results directory and every output table.
func (p *Paths) WithResultsDir(dir string) *Paths {
	p.ResultsDir = dir
	p.UnifiedCSV = filepath.Join(dir, "unified_timeseries.csv")
	p.EnrichedCSV = filepath.Join(dir, "unified_timeseries_enriched.csv")
	p.CorrelationCSV = filepath.Join(dir, "correlation_records.csv")
	p.GPUIndexCSV = filepath.Join(dir, "gpu_price_index.csv")
	p.RAMIndexCSV = filepath.Join(dir, "ram_price_index.csv")
	p.CategoryCSV = filepath.Join(dir, "category_summary.csv")
	p.ProducerRiskCSV = filepath.Join(dir, "producer_risk.csv")
	p.InsightsTXT = filepath.Join(dir, "insights.txt")
	return p
}

// EnsureDirectories creates all required directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.RiskDir,
		p.EnergyDir,
		p.HardwareDir,
		p.CryptoDir,
		p.ResultsDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetLogPath returns the path of a log file inside the logs directory.
func (p *Paths) GetLogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}

// GetResultPath returns the path of a named file inside the results
// directory.
func (p *Paths) GetResultPath(name string) string {
	return filepath.Join(p.ResultsDir, name)
}

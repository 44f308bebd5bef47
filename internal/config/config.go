package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// ServerConfig contains HTTP server configuration for the results API.
// Defaults live in applyDefaults, not in envconfig default tags: a tag
// default would populate the env-side struct before the file merge and
// silently shadow every file value.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR"`
	ResultsDir string `yaml:"results_dir" envconfig:"RESULTS_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// AnalysisConfig carries the knobs of the unification and correlation
// stages. StartDate/EndDate restrict the unified calendar to a sub-range;
// either may be set on its own, and empty means the union of all source
// date ranges.
type AnalysisConfig struct {
	StartDate        string `yaml:"start_date" envconfig:"START_DATE" validate:"omitempty,datetime=2006-01-02"`
	EndDate          string `yaml:"end_date" envconfig:"END_DATE" validate:"omitempty,datetime=2006-01-02"`
	Lags             []int  `yaml:"lags" envconfig:"LAGS"`
	MinSamples       int    `yaml:"min_samples" envconfig:"MIN_SAMPLES" validate:"gt=1"`
	VolatilityWindow int    `yaml:"volatility_window" envconfig:"VOLATILITY_WINDOW" validate:"gt=1"`
}

// DefaultLags is the lag offset set (in days) applied to market signals
// when no explicit configuration is given.
var DefaultLags = []int{0, 7, 14, 28}

// Load loads configuration from environment variables and an optional
// YAML config file. Environment variables take precedence.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("GEOPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile := findConfigFile(); configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", configFile, err)
		}
		cfg = merge(*fileCfg, cfg)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct validation rules.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	for _, lag := range c.Analysis.Lags {
		if lag < 0 {
			return fmt.Errorf("negative lag offset: %d", lag)
		}
	}
	if c.Analysis.StartDate != "" && c.Analysis.EndDate != "" && c.Analysis.StartDate > c.Analysis.EndDate {
		return fmt.Errorf("analysis start_date %s after end_date %s", c.Analysis.StartDate, c.Analysis.EndDate)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if c.Paths.DataDir == "" {
		c.Paths.DataDir = "data"
	}
	if c.Paths.ResultsDir == "" {
		c.Paths.ResultsDir = "results"
	}
	if c.Paths.LogsDir == "" {
		c.Paths.LogsDir = "logs"
	}
	if len(c.Analysis.Lags) == 0 {
		c.Analysis.Lags = append([]int(nil), DefaultLags...)
	}
	if c.Analysis.MinSamples == 0 {
		c.Analysis.MinSamples = 10
	}
	if c.Analysis.VolatilityWindow == 0 {
		c.Analysis.VolatilityWindow = 7
	}
	if c.Logging.Format != "json" {
		// JSON only; the log file is consumed by tooling.
		c.Logging.Format = "json"
	}
	if c.Logging.Output != "both" && c.Logging.Output != "file" && c.Logging.Output != "stdout" {
		c.Logging.Output = "both"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/geopulse.log"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// merge overlays env config on top of file config (env wins where set).
func merge(fileCfg, envCfg Config) Config {
	out := envCfg
	if out.Server.Port == 0 {
		out.Server.Port = fileCfg.Server.Port
	}
	if out.Server.ReadTimeout == 0 {
		out.Server.ReadTimeout = fileCfg.Server.ReadTimeout
	}
	if out.Server.WriteTimeout == 0 {
		out.Server.WriteTimeout = fileCfg.Server.WriteTimeout
	}
	if out.Server.IdleTimeout == 0 {
		out.Server.IdleTimeout = fileCfg.Server.IdleTimeout
	}
	if out.Server.ShutdownTimeout == 0 {
		out.Server.ShutdownTimeout = fileCfg.Server.ShutdownTimeout
	}
	if out.Logging.Level == "" {
		out.Logging.Level = fileCfg.Logging.Level
	}
	if out.Logging.FilePath == "" {
		out.Logging.FilePath = fileCfg.Logging.FilePath
	}
	if out.Paths.DataDir == "" {
		out.Paths.DataDir = fileCfg.Paths.DataDir
	}
	if out.Paths.ResultsDir == "" {
		out.Paths.ResultsDir = fileCfg.Paths.ResultsDir
	}
	if out.Paths.LogsDir == "" {
		out.Paths.LogsDir = fileCfg.Paths.LogsDir
	}
	if out.Analysis.StartDate == "" {
		out.Analysis.StartDate = fileCfg.Analysis.StartDate
	}
	if out.Analysis.EndDate == "" {
		out.Analysis.EndDate = fileCfg.Analysis.EndDate
	}
	if len(out.Analysis.Lags) == 0 {
		out.Analysis.Lags = fileCfg.Analysis.Lags
	}
	if out.Analysis.MinSamples == 0 {
		out.Analysis.MinSamples = fileCfg.Analysis.MinSamples
	}
	if out.Analysis.VolatilityWindow == 0 {
		out.Analysis.VolatilityWindow = fileCfg.Analysis.VolatilityWindow
	}
	return out
}

// findConfigFile returns the path of the first config file found in the
// common locations, or "" when only env vars should be used.
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/geopulse.log",
		},
		Paths: PathsConfig{
			DataDir:    "data",
			ResultsDir: "results",
			LogsDir:    "logs",
		},
		Analysis: AnalysisConfig{
			Lags:             append([]int(nil), DefaultLags...),
			MinSamples:       10,
			VolatilityWindow: 7,
		},
	}
}

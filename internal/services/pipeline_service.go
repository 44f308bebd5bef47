package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"geocli/internal/analytics"
	"geocli/internal/config"
	"geocli/internal/exporter"
	"geocli/internal/files"
	"geocli/internal/hardware"
	"geocli/internal/infrastructure"
	"geocli/internal/ingest"
	"geocli/internal/unify"
	"geocli/pkg/contracts/domain"
)

// Market signal column names for the non-hardware price sources. Tier
// index columns carry their own generated names.
const (
	SignalBrent = "brent_price"
	SignalWTI   = "wti_price"
	SignalBTC   = "btc_price"
)

// energyPreambleRows is the number of banner rows above the real header
// in the energy price feeds.
const energyPreambleRows = 2

// RunSummary reports what a pipeline run produced.
type RunSummary struct {
	RunID        string
	Duration     time.Duration
	Days         int
	Signals      int
	Correlations int
	Undefined    int
	SourceStats  []ingest.Stats
}

// PipelineService orchestrates a full batch run: discover sources,
// ingest, unify, analyse, export. One call, one run, no shared state
// between runs.
type PipelineService struct {
	cfg    *config.Config
	paths  *config.Paths
	logger *slog.Logger
}

// NewPipelineService creates the pipeline orchestrator.
func NewPipelineService(cfg *config.Config, paths *config.Paths, logger *slog.Logger) *PipelineService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PipelineService{cfg: cfg, paths: paths, logger: logger}
}

// Run executes the full pipeline and writes every output table. The
// run ID in the context tags all log records of the run.
func (s *PipelineService) Run(ctx context.Context) (*RunSummary, error) {
	start := time.Now()
	logger := infrastructure.LoggerFromContext(ctx)

	summary, err := s.run(ctx, logger)

	duration := time.Since(start)
	infrastructure.PipelineDurationSeconds.Observe(duration.Seconds())
	if err != nil {
		infrastructure.PipelineRunsTotal.WithLabelValues("failure").Inc()
		logger.Error("pipeline run failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", duration))
		return nil, err
	}

	infrastructure.PipelineRunsTotal.WithLabelValues("success").Inc()
	summary.RunID = infrastructure.GetRunID(ctx)
	summary.Duration = duration
	logger.Info("pipeline run complete",
		slog.Duration("duration", duration),
		slog.Int("days", summary.Days),
		slog.Int("signals", summary.Signals),
		slog.Int("correlations", summary.Correlations))

	return summary, nil
}

func (s *PipelineService) run(ctx context.Context, logger *slog.Logger) (*RunSummary, error) {
	summary := &RunSummary{}

	observations, err := s.loadRiskObservations(logger, summary)
	if err != nil {
		return nil, err
	}

	riskSources, err := s.riskDailySignals(observations)
	if err != nil {
		return nil, err
	}

	marketSources, err := s.loadMarketSignals(logger, summary)
	if err != nil {
		return nil, err
	}

	indices, err := s.loadTierIndices(logger, summary)
	if err != nil {
		return nil, err
	}
	for _, idx := range indices {
		marketSources = append(marketSources, unify.NamedSeries{Name: idx.Signal, Values: idx.Values})
	}

	if len(marketSources) == 0 {
		return nil, fmt.Errorf("no market sources found under %s", s.paths.DataDir)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	series, err := s.buildSeries(logger, riskSources, marketSources)
	if err != nil {
		return nil, err
	}
	summary.Days = series.Len()

	writer := exporter.NewCSVWriter(logger)
	if err := writer.ExportUnifiedSeries(s.paths.UnifiedCSV, series); err != nil {
		return nil, fmt.Errorf("export unified series: %w", err)
	}

	marketNames := make([]string, 0, len(marketSources))
	for _, source := range marketSources {
		marketNames = append(marketNames, source.Name)
	}
	enricher := analytics.NewEnricher(s.cfg.Analysis.VolatilityWindow, logger)
	if err := enricher.Enrich(series, marketNames); err != nil {
		return nil, fmt.Errorf("enrich series: %w", err)
	}
	summary.Signals = len(series.ColumnNames())

	if err := writer.ExportUnifiedSeries(s.paths.EnrichedCSV, series); err != nil {
		return nil, fmt.Errorf("export enriched series: %w", err)
	}

	records, err := s.correlate(logger, series, riskSources, marketNames)
	if err != nil {
		return nil, err
	}
	summary.Correlations = len(records)
	for _, record := range records {
		if !record.Defined {
			summary.Undefined++
			infrastructure.UndefinedCorrelationsTotal.Inc()
		}
	}
	if err := writer.ExportCorrelations(s.paths.CorrelationCSV, records); err != nil {
		return nil, fmt.Errorf("export correlations: %w", err)
	}

	if err := s.exportHardware(writer, indices); err != nil {
		return nil, err
	}

	categories := analytics.CategorySummary(observations)
	if err := writer.ExportCategorySummary(s.paths.CategoryCSV, categories); err != nil {
		return nil, fmt.Errorf("export category summary: %w", err)
	}

	producers := analytics.RankProducers(observations)
	if err := writer.ExportProducerRisk(s.paths.ProducerRiskCSV, producers); err != nil {
		return nil, fmt.Errorf("export producer risk: %w", err)
	}

	report := analytics.InsightsReport{
		DataThrough:  series.Dates()[series.Len()-1],
		Correlations: records,
		Producers:    producers,
	}
	if err := writer.WriteText(s.paths.InsightsTXT, report.Render()); err != nil {
		return nil, fmt.Errorf("write insights report: %w", err)
	}

	return summary, nil
}

// loadRiskObservations reads every indicator file present under the risk
// directory and tags the melted observations. At least one indicator
// must exist; individual absent indicators are only warned about.
func (s *PipelineService) loadRiskObservations(logger *slog.Logger, summary *RunSummary) ([]domain.RiskObservation, error) {
	discovery := files.NewDiscovery(s.paths.RiskDir)
	available, err := discovery.FindCSVFiles(".")
	if err != nil {
		return nil, fmt.Errorf("discover risk sources: %w", err)
	}

	byName := make(map[string]string, len(available))
	for _, f := range available {
		byName[strings.ToLower(strings.TrimSuffix(f.Name, filepath.Ext(f.Name)))] = f.Path
	}

	reader := ingest.NewRiskReader(logger)
	var observations []domain.RiskObservation
	for _, indicator := range config.RiskIndicators {
		path, ok := byName[indicator]
		if !ok {
			logger.Warn("risk indicator source missing",
				slog.String("indicator", indicator),
				slog.String("dir", s.paths.RiskDir))
			continue
		}
		obs, stats, err := reader.ReadIndicator(path, indicator)
		if err != nil {
			return nil, err
		}
		s.recordStats(summary, stats)
		observations = append(observations, obs...)
	}

	if len(observations) == 0 {
		return nil, fmt.Errorf("no risk indicator sources under %s", s.paths.RiskDir)
	}

	tagger := unify.NewTagger(logger)
	return tagger.Tag(observations), nil
}

// riskDailySignals reduces the long-form observations to one daily
// cross-country mean column per indicator, in canonical indicator order.
func (s *PipelineService) riskDailySignals(observations []domain.RiskObservation) ([]unify.NamedSeries, error) {
	var sources []unify.NamedSeries
	for _, indicator := range config.RiskIndicators {
		daily := unify.AggregateDaily(observations, indicator)
		if len(daily) == 0 {
			continue
		}
		sources = append(sources, unify.NamedSeries{Name: indicator, Values: daily})
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("risk observations reduce to no daily signals")
	}
	return sources, nil
}

// loadMarketSignals reads the energy and crypto price feeds. Any of them
// may be absent; the pipeline needs at least one market signal overall,
// which the caller enforces after tier indices are added.
func (s *PipelineService) loadMarketSignals(logger *slog.Logger, summary *RunSummary) ([]unify.NamedSeries, error) {
	reader := ingest.NewSeriesReader(logger)

	feeds := []struct {
		dir    string
		file   string
		signal string
		opts   ingest.SeriesOptions
	}{
		{s.paths.EnergyDir, "brent.csv", SignalBrent, ingest.SeriesOptions{SkipRows: energyPreambleRows, DateColumn: "date", ValueColumn: "price"}},
		{s.paths.EnergyDir, "wti.csv", SignalWTI, ingest.SeriesOptions{SkipRows: energyPreambleRows, DateColumn: "date", ValueColumn: "price"}},
		{s.paths.CryptoDir, "btc.csv", SignalBTC, ingest.SeriesOptions{DateColumn: "date", ValueColumn: "price"}},
	}

	var sources []unify.NamedSeries
	for _, feed := range feeds {
		path := filepath.Join(feed.dir, feed.file)
		values, stats, err := reader.ReadDaily(path, feed.signal, feed.opts)
		if err != nil {
			logger.Warn("market source unavailable",
				slog.String("signal", feed.signal),
				slog.String("path", path),
				slog.String("error", err.Error()))
			continue
		}
		s.recordStats(summary, stats)
		sources = append(sources, unify.NamedSeries{Name: feed.signal, Values: values})
	}

	return sources, nil
}

// loadTierIndices reads every hardware listing snapshot and aggregates
// them into per-tier daily price indices. The listing kind comes from
// the filename ("gpu" or "ram" substring).
func (s *PipelineService) loadTierIndices(logger *slog.Logger, summary *RunSummary) ([]hardware.TierIndex, error) {
	discovery := files.NewDiscovery(s.paths.HardwareDir)
	snapshots, err := discovery.FindListingFiles(".")
	if err != nil {
		return nil, fmt.Errorf("discover hardware sources: %w", err)
	}

	reader := ingest.NewListingReader(logger)
	var listings []domain.Listing
	for _, snapshot := range snapshots {
		kind, ok := listingKindFromName(snapshot.Name)
		if !ok {
			logger.Warn("cannot tell GPU from RAM snapshot, skipping",
				slog.String("file", snapshot.Name))
			continue
		}
		rows, stats, err := reader.ReadFile(snapshot.Path, kind)
		if err != nil {
			return nil, err
		}
		s.recordStats(summary, stats)
		listings = append(listings, rows...)
	}

	if len(listings) == 0 {
		logger.Info("no hardware listings found", slog.String("dir", s.paths.HardwareDir))
		return nil, nil
	}

	builder := hardware.NewIndexBuilder(logger)
	return builder.Build(listings), nil
}

func listingKindFromName(name string) (domain.ListingKind, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "gpu"):
		return domain.ListingGPU, true
	case strings.Contains(lower, "ram"):
		return domain.ListingRAM, true
	default:
		return "", false
	}
}

// buildSeries aligns risk signals then market signals onto the unified
// calendar, honouring a configured sub-range. Either bound may be set
// on its own; the other side falls back to the union of the sources.
func (s *PipelineService) buildSeries(logger *slog.Logger, risk, market []unify.NamedSeries) (*domain.UnifiedSeries, error) {
	builder := unify.NewBuilder(logger)

	var startDate, endDate time.Time
	if s.cfg.Analysis.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", s.cfg.Analysis.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid analysis start_date: %w", err)
		}
		startDate = parsed
	}
	if s.cfg.Analysis.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", s.cfg.Analysis.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid analysis end_date: %w", err)
		}
		endDate = parsed
	}
	if !startDate.IsZero() || !endDate.IsZero() {
		builder = builder.WithRange(startDate, endDate)
	}

	sources := make([]unify.NamedSeries, 0, len(risk)+len(market))
	sources = append(sources, risk...)
	sources = append(sources, market...)

	return builder.Build(sources)
}

// correlate sweeps every risk signal against every market signal at the
// configured lags.
func (s *PipelineService) correlate(logger *slog.Logger, series *domain.UnifiedSeries, risk []unify.NamedSeries, marketNames []string) ([]domain.CorrelationRecord, error) {
	pairs := make([]domain.SignalPair, 0, len(risk)*len(marketNames))
	for _, r := range risk {
		for _, market := range marketNames {
			pairs = append(pairs, domain.SignalPair{Risk: r.Name, Market: market})
		}
	}

	engine := analytics.NewEngine(analytics.EngineConfig{
		Pairs:      pairs,
		Lags:       s.cfg.Analysis.Lags,
		MinSamples: s.cfg.Analysis.MinSamples,
	}, logger)

	records, err := engine.Compute(series)
	if err != nil {
		return nil, fmt.Errorf("correlation sweep: %w", err)
	}
	return records, nil
}

// exportHardware writes the GPU and RAM index tables, splitting the
// combined tier index list by kind.
func (s *PipelineService) exportHardware(writer *exporter.CSVWriter, indices []hardware.TierIndex) error {
	var gpu, ram []hardware.TierIndex
	for _, idx := range indices {
		switch idx.Kind {
		case domain.ListingGPU:
			gpu = append(gpu, idx)
		case domain.ListingRAM:
			ram = append(ram, idx)
		}
	}

	if err := writer.ExportTierIndices(s.paths.GPUIndexCSV, gpu); err != nil {
		return fmt.Errorf("export GPU index: %w", err)
	}
	if err := writer.ExportTierIndices(s.paths.RAMIndexCSV, ram); err != nil {
		return fmt.Errorf("export RAM index: %w", err)
	}
	return nil
}

func (s *PipelineService) recordStats(summary *RunSummary, stats ingest.Stats) {
	summary.SourceStats = append(summary.SourceStats, stats)
	infrastructure.RowsParsedTotal.WithLabelValues(stats.Source).Add(float64(stats.Parsed))
	infrastructure.RowsDroppedTotal.WithLabelValues(stats.Source).Add(float64(stats.Dropped))
}

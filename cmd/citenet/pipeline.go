package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/citenet/internal/citegraph"
	"github.com/matsen/citenet/internal/config"
	"github.com/matsen/citenet/internal/logging"
	"github.com/matsen/citenet/internal/metrics"
	"github.com/matsen/citenet/internal/record"
	"github.com/matsen/citenet/internal/scholar"
)

var (
	errNoSources = errors.New("no profiles or record files given")
	errNoRecords = errors.New("no usable publication records")
)

// sourceFlags are the input flags shared by analyze and viz.
type sourceFlags struct {
	records []string
	topK    int
}

func addSourceFlags(cmd *cobra.Command, f *sourceFlags) {
	cmd.Flags().StringSliceVar(&f.records, "records", nil, "Read publication rows from JSONL files instead of fetching profiles")
	cmd.Flags().IntVarP(&f.topK, "top", "k", 0, "Entries per metric (default from config)")
}

// apply overrides config values with flags that were set.
func (f *sourceFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("top") {
		cfg.TopK = f.topK
	}
	return cfg.Validate()
}

// pipelineInput selects where publication rows come from. Record files take
// precedence over profiles.
type pipelineInput struct {
	Profiles    []string
	RecordFiles []string
}

// sources returns the identifiers handed to the fetcher.
func (in pipelineInput) sources() []string {
	if len(in.RecordFiles) > 0 {
		return in.RecordFiles
	}
	return in.Profiles
}

// resolveInput picks profiles from args, falling back to config.
func resolveInput(args []string, f *sourceFlags, cfg *config.Config) pipelineInput {
	in := pipelineInput{Profiles: args, RecordFiles: f.records}
	if len(in.Profiles) == 0 {
		in.Profiles = cfg.Profiles
	}
	return in
}

// pipelineResult carries every stage of one run.
type pipelineResult struct {
	RunID   string
	Fetch   *scholar.FetchResult
	Ingest  record.IngestResult
	Graph   *citegraph.Graph
	Metrics *metrics.Result
}

// fetcherFactory opens the fetcher for an input. Replaced in tests.
var fetcherFactory = openFetcher

func openFetcher(cfg *config.Config, log *zap.Logger, in pipelineInput) (scholar.Fetcher, error) {
	if len(in.RecordFiles) > 0 {
		return scholar.NewFileFetcher(""), nil
	}
	return scholar.NewChromeFetcher(scholar.ChromeOptions{
		ExecPath:    cfg.ChromePath,
		ShowBrowser: cfg.ShowBrowser,
		Timeout:     cfg.FetchTimeout,
		Logger:      log,
	})
}

// runPipeline fetches, ingests, builds the graph and computes every metric.
// A non-nil result is returned alongside errNoRecords so callers can still
// report the empty run.
func runPipeline(ctx context.Context, cfg *config.Config, log *zap.Logger, in pipelineInput) (*pipelineResult, error) {
	sources := in.sources()
	if len(sources) == 0 {
		return nil, errNoSources
	}

	log, runID := logging.WithRun(log)
	res := &pipelineResult{RunID: runID}

	fetcher, err := fetcherFactory(cfg, log, in)
	if err != nil {
		return nil, fmt.Errorf("opening fetcher: %w", err)
	}
	defer fetcher.Close()

	opts := scholar.FetchOptions{
		Concurrency: cfg.Concurrency,
		RateLimit:   cfg.RateLimit,
		Logger:      log,
	}
	// Local record files skip the page-load limiter.
	if len(in.RecordFiles) > 0 {
		opts.RateLimit = scholar.NoRateLimit
	}
	res.Fetch, err = scholar.FetchAll(ctx, fetcher, sources, opts)
	if err != nil {
		return res, err
	}

	res.Ingest = record.Ingest(res.Fetch.Raws(), log)
	res.Graph = citegraph.Build(res.Ingest.Records)
	if dup := res.Graph.DuplicateTitles(); dup > 0 {
		log.Info("duplicate titles collapsed", zap.Int("count", dup))
	}
	log.Info("graph built",
		zap.Int("records", len(res.Ingest.Records)),
		zap.Int("skipped", len(res.Ingest.Skipped)),
		zap.Int("nodes", res.Graph.Len()),
		zap.Int("edges", res.Graph.EdgeCount()),
	)

	res.Metrics = metrics.Compute(res.Graph, cfg.Metrics(), log)

	if len(res.Ingest.Records) == 0 {
		return res, errNoRecords
	}
	return res, nil
}

// exitCodeFor maps pipeline errors to exit codes.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errNoSources), errors.Is(err, config.ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, errNoRecords):
		return ExitDataError
	case scholar.IsAllFailed(err):
		return ExitFetchError
	default:
		return ExitError
	}
}

// mustRunPipeline runs the pipeline, exiting on errors that leave nothing to
// report. errNoRecords is returned so the caller reports the empty run first.
func mustRunPipeline(ctx context.Context, cfg *config.Config, log *zap.Logger, in pipelineInput) (*pipelineResult, error) {
	res, err := runPipeline(ctx, cfg, log, in)
	switch {
	case err == nil, errors.Is(err, errNoRecords):
		return res, err
	case errors.Is(err, errNoSources):
		exitWithError(ExitConfigError, "%s", config.HelpfulConfigMessage())
	default:
		exitWithError(exitCodeFor(err), "%v", err)
	}
	return nil, err
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/citenet/internal/report"
	"github.com/matsen/citenet/internal/scholar"
)

var analyzeFlags sourceFlags

func init() {
	addSourceFlags(analyzeCmd, &analyzeFlags)
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [profile...]",
	Short: "Build the citation network and rank its nodes",
	Long: `Fetch the publication lists of the given Scholar profiles, build the
citation network and report the top nodes per centrality metric.

Profiles are user IDs or profile URLs. Without arguments the profiles from
the config file are used.

Examples:
  # Two authors by user ID
  citenet analyze 6Rzu0kMAAAAJ vAY9ddAAAAAJ --human

  # Offline, from saved rows
  citenet analyze --records mayank.jsonl --records arijit.jsonl

  # Top 10 per metric
  citenet analyze -k 10`,
	RunE: runAnalyze,
}

// AnalyzeResponse is the JSON output of analyze.
type AnalyzeResponse struct {
	RunID           string                  `json:"run_id"`
	Profiles        []scholar.ProfileResult `json:"profiles"`
	DuplicateTitles int                     `json:"duplicate_titles"`
	Summary         report.Summary          `json:"summary"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	if err := analyzeFlags.apply(cmd, cfg); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	log := mustNewLogger(cfg)
	defer log.Sync()

	res, err := mustRunPipeline(cmd.Context(), cfg, log, resolveInput(args, &analyzeFlags, cfg))

	summary := report.Build(res.Metrics, cfg.TopK, len(res.Ingest.Records), len(res.Ingest.Skipped))
	if humanOutput {
		if failed := res.Fetch.Failed(); failed > 0 {
			outputHuman("Warning: %d of %d profiles failed to fetch\n", failed, len(res.Fetch.Profiles))
		}
		fmt.Print(report.FormatHuman(summary))
	} else {
		outputJSON(AnalyzeResponse{
			RunID:           res.RunID,
			Profiles:        res.Fetch.Profiles,
			DuplicateTitles: res.Graph.DuplicateTitles(),
			Summary:         summary,
		})
	}

	if err != nil {
		log.Sync()
		os.Exit(exitCodeFor(err))
	}
	return nil
}

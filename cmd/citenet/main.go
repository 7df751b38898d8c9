// Package main provides the citenet CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/citenet/internal/config"
	"github.com/matsen/citenet/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

// ServiceName tags every log line.
const ServiceName = "citenet"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	configPath  string
	logLevel    string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "citenet",
	Short: "Citation network analysis of Scholar profiles",
	Long: `citenet builds a citation network from the publication lists of one or
more Scholar author profiles and ranks its nodes.

Each paper is linked from a "Cited N times" node shared by all papers with
the same citation count. The network is ranked by degree, eigenvector and
betweenness centrality and PageRank.

All commands output JSON by default; logs go to stderr.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/citenet/config.yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg
}

// mustNewLogger builds the stderr logger, exits on error.
func mustNewLogger(cfg *config.Config) *zap.Logger {
	log, err := logging.New(ServiceName, cfg.LogLevel, humanOutput)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return log
}

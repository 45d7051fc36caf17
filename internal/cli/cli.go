package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandpointevents/event-pipeline/internal/config"
	"github.com/sandpointevents/event-pipeline/internal/gazetteer"
	"github.com/sandpointevents/event-pipeline/internal/logger"
	"github.com/sandpointevents/event-pipeline/internal/merge"
	"github.com/sandpointevents/event-pipeline/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig     string
	flagFormat     string
	flagVerbose    bool
	flagSourcesDir string
	flagOutputDir  string
	flagWindowDays int
	flagGazetteer  string
)

// NewRootCmd creates the root command with the merge, parse and validate
// subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event-pipeline",
		Short: "Consolidate scraped event listings into a publishable dataset",
		Long: `A batch pipeline that loads raw scraped event records from multiple
sources, removes near-duplicates, normalizes schema drift, validates dates
and times, and writes production-ready and needs-review JSON outputs with a
merge report.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "config.yaml", "Path to YAML config file")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(newMergeCmd())
	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newValidateCmd())

	return cmd
}

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Run the full merge pipeline and persist outputs",
		RunE:  runMerge,
	}

	cmd.Flags().StringVar(&flagSourcesDir, "sources-dir", "", "Directory of raw per-source JSON files (overrides config)")
	cmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "Directory for pipeline outputs (overrides config)")
	cmd.Flags().IntVar(&flagWindowDays, "window-days", 0, "Days ahead an event may start and still publish (overrides config)")
	cmd.Flags().StringVar(&flagGazetteer, "gazetteer", "", "YAML overlay for the venue/tag/source tables (overrides config)")

	return cmd
}

func runMerge(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagFormat)
	if err != nil {
		return err
	}

	cfg, tables, err := loadRuntime()
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.SourcesDir, cfg.LegacyDirs, cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	result, err := merge.New(tables, store, cfg.WindowDays).MergeAll()
	if err != nil {
		// Leave a durable explanation next to whatever outputs survive
		// from prior runs, then fail loudly.
		if logErr := store.WriteErrorLog(err); logErr != nil {
			logger.Error("writing error log", nil, logErr)
		}
		return fmt.Errorf("merge failed: %w", err)
	}

	return WriteRunSummary(cmd.OutOrStdout(), result, format)
}

// loadRuntime resolves config, flag overrides and the gazetteer tables
// shared by the subcommands.
func loadRuntime() (*config.Config, *gazetteer.Tables, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	if flagSourcesDir != "" {
		cfg.SourcesDir = flagSourcesDir
	}
	if flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}
	if flagWindowDays > 0 {
		cfg.WindowDays = flagWindowDays
	}
	if flagGazetteer != "" {
		cfg.GazetteerPath = flagGazetteer
	}

	if flagVerbose {
		logger.SetLevel(logger.LevelDebug)
	} else if strings.EqualFold(cfg.LogLevel, "debug") {
		logger.SetLevel(logger.LevelDebug)
	}

	tables, err := gazetteer.Load(cfg.GazetteerPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, tables, nil
}

func parseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(s))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

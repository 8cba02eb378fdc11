// Package cmd provides the CLI commands for docrank.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/docrank/internal/logging"
	"github.com/Aman-CERP/docrank/internal/output"
	"github.com/Aman-CERP/docrank/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the docrank CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docrank",
		Short: "BM25 search over project documentation",
		Long: `docrank indexes a project's markdown documentation (agent rules,
workflows, skills, docs) into header-delimited chunks and ranks them
against free-text queries with Okapi BM25.

  docrank index             build data/bm25_index.csv
  docrank search "git flow" show the 5 best-matching sections
  docrank serve             answer the same queries over MCP (stdio)`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("docrank version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.docrank/logs/")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging installs the default logger: warnings to stderr, or with
// --debug, everything to the rotating log file as well. Commands that own
// stdio (serve) replace it.
func startLogging(cmd *cobra.Command, _ []string) error {
	cfg := logging.DefaultConfig()
	cfg.Stderr = cmd.ErrOrStderr()
	if lvl := os.Getenv("DOCRANK_LOG_LEVEL"); lvl != "" {
		cfg.Level = lvl
	}
	if debugMode {
		cfg.Level = "debug"
		cfg.FilePath = logging.DefaultLogPath()
	}

	cleanup, err := logging.SetupDefault(cfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	loggingCleanup = cleanup

	if debugMode {
		slog.Debug("debug_logging_enabled",
			slog.String("log_file", cfg.FilePath),
			slog.String("version", version.Version),
			slog.String("command", cmd.CommandPath()))
	}
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		output.New(os.Stderr).Failure(err)
		_ = stopLogging(root, nil)
	}
	return err
}

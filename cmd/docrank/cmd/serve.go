package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	drerrors "github.com/Aman-CERP/docrank/internal/errors"
	"github.com/Aman-CERP/docrank/internal/logging"
	"github.com/Aman-CERP/docrank/internal/mcp"
	"github.com/Aman-CERP/docrank/internal/search"
)

func newServeCmd() *cobra.Command {
	var indexFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve search over MCP (stdio)",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing two tools:

  search_docs   {query, limit?, scope?}  ranked documentation chunks
  index_status  {}                       index path, existence and size

Stdout carries JSON-RPC only; logs go to ~/.docrank/logs/docrank.log.
The index is re-read whenever it changes on disk, so a running
'docrank index --watch' keeps answers current.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, indexFile)
		},
	}

	cmd.Flags().StringVar(&indexFile, "index", "", "Index file (default: <root>/data/bm25_index.csv)")

	return cmd
}

func runServe(cmd *cobra.Command, indexFile string) error {
	p, err := loadProject(nil, "")
	if err != nil {
		return err
	}

	level := p.cfg.Log.Level
	if debugMode {
		level = "debug"
	}
	cleanup, err := logging.SetupDefault(logging.ServeConfig(level))
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer cleanup()

	indexPath, err := p.indexPath(indexFile)
	if err != nil {
		return err
	}
	format, err := p.format("")
	if err != nil {
		return drerrors.New(drerrors.ErrCodeConfigInvalid, err.Error(), err)
	}

	engine, err := search.NewEngine(indexPath, p.searchOptions(format), p.cfg.Search.CacheSize)
	if err != nil {
		return err
	}
	srv, err := mcp.NewServer(engine, mcp.Options{DefaultLimit: p.cfg.Search.MaxResults})
	if err != nil {
		return err
	}

	slog.Info("serve_started", slog.String("root", p.root), slog.String("index", indexPath))

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Serve(ctx)
}

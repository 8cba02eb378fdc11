package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	drerrors "github.com/Aman-CERP/docrank/internal/errors"
	"github.com/Aman-CERP/docrank/internal/index"
	"github.com/Aman-CERP/docrank/internal/ui"
)

type indexOptions struct {
	output   string
	format   string
	watch    bool
	quiet    bool
	debounce time.Duration
}

func newIndexCmd() *cobra.Command {
	var opts indexOptions

	cmd := &cobra.Command{
		Use:   "index [path]",
		Short: "Build the documentation index",
		Long: `Scan the project's documentation folders, split every markdown file at
its headers and write the chunk list to the index file.

Scanned folders (relative to the project root, configurable under scan.folders):
  agent/rules, agent/rules/project, agent/rules/archive, agent/workflows,
  agent/skills, agent/reference, docs, documentation
plus markdown files directly in the root.

The index is rebuilt from scratch on every run. With --watch, it is rebuilt
again whenever a covered file changes.

Examples:
  docrank index
  docrank index ~/projects/site --output /tmp/site.db
  docrank index --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) > 0 {
				dir = args[0]
			}
			return runIndex(cmd, dir, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Index file (default: <root>/data/bm25_index.csv)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Index format: csv, sqlite, auto (default from config)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Rebuild whenever documentation changes")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Only print warnings and the summary")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 500*time.Millisecond, "Quiet period before a watch rebuild")

	return cmd
}

func runIndex(cmd *cobra.Command, dir string, opts indexOptions) error {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return drerrors.New(drerrors.ErrCodeInvalidPath, "not a directory: "+dir, err).
				WithSuggestion("Pass the project root, or run from inside the project")
		}
	}

	p, err := loadProject(cmd, dir)
	if err != nil {
		return err
	}
	indexPath, err := p.indexPath(opts.output)
	if err != nil {
		return err
	}
	format, err := p.format(opts.format)
	if err != nil {
		return drerrors.New(drerrors.ErrCodeConfigInvalid, err.Error(), err)
	}

	uiCfg := ui.NewConfig(cmd.OutOrStdout())
	uiCfg.Quiet = opts.quiet
	renderer := ui.NewIndexRenderer(uiCfg)

	runner, err := index.New(index.Options{
		Scan:      p.scanOptions(),
		IndexPath: indexPath,
		Format:    format,
		OnFile:    renderer.FileProcessed,
	})
	if err != nil {
		return err
	}

	renderer.Start(p.root)

	if opts.watch {
		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runner.Watch(ctx, index.WatchOptions{
			DebounceWindow: opts.debounce,
			OnRebuild: func(result *index.Result, err error) {
				if err != nil {
					if !errors.Is(err, context.Canceled) {
						renderer.Failed(err)
					}
					return
				}
				report(renderer, result)
			},
			OnConfigChange: func(path string) {
				renderer.Warn(path + " changed; restart the watch to apply it")
			},
		})
	}

	result, err := runner.Run(commandContext(cmd))
	if err != nil {
		return err
	}
	report(renderer, result)
	return nil
}

func report(renderer *ui.IndexRenderer, result *index.Result) {
	for _, s := range result.Skipped {
		renderer.FileSkipped(s.Path, s.Err)
	}
	renderer.Complete(ui.CompletionStats{
		IndexPath: result.IndexPath,
		Files:     result.Files,
		Chunks:    result.Chunks,
		Skipped:   len(result.Skipped),
		Duration:  result.Duration,
	})
}

// commandContext returns the command's context, or Background when run
// without one (as in tests calling Execute).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

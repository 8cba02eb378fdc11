package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	drerrors "github.com/Aman-CERP/docrank/internal/errors"
	"github.com/Aman-CERP/docrank/internal/output"
	"github.com/Aman-CERP/docrank/internal/search"
	"github.com/Aman-CERP/docrank/internal/ui"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	limit  int
	format string   // "text", "json"
	index  string   // explicit index file
	scopes []string // path prefixes for filtering
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search the documentation index",
		Long: `Rank every indexed chunk against the query with BM25 and print the best
matches that share at least one term with it.

Examples:
  docrank search git branching strategy
  docrank search "release checklist" -n 3
  docrank search deploy --scope agent/workflows --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 5, "Maximum number of results (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().StringVar(&opts.index, "index", "", "Index file (default: <root>/data/bm25_index.csv)")
	cmd.Flags().StringSliceVarP(&opts.scopes, "scope", "s", nil, "Restrict to a path prefix (repeatable)")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, opts searchOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return drerrors.New(drerrors.ErrCodeInvalidInput, fmt.Sprintf("unknown output format: %s", opts.format), nil).
			WithSuggestion("Use --format text or --format json")
	}

	p, err := loadProject(cmd, "")
	if err != nil {
		return err
	}
	indexPath, err := p.indexPath(opts.index)
	if err != nil {
		return err
	}
	format, err := p.format("")
	if err != nil {
		return drerrors.New(drerrors.ErrCodeConfigInvalid, err.Error(), err)
	}

	limit := p.cfg.Search.MaxResults
	if cmd.Flags().Changed("limit") {
		limit = opts.limit
	}

	// One query per process: the session cache would never hit.
	engine, err := search.NewEngine(indexPath, p.searchOptions(format), 0)
	if err != nil {
		return err
	}

	results, err := engine.Search(search.Query{Text: query, Limit: limit, Scopes: opts.scopes})
	if err != nil {
		slog.Debug("search_failed", drerrors.LogAttrs(err)...)
		return err
	}

	out := cmd.OutOrStdout()
	if opts.format == "json" {
		return output.JSON(out, results)
	}
	ui.RenderResults(out, query, results, ui.GetStyles(!ui.UseColor(out)))
	return nil
}

package cmd

import (
	"github.com/spf13/cobra"

	drerrors "github.com/Aman-CERP/docrank/internal/errors"
	"github.com/Aman-CERP/docrank/internal/output"
	"github.com/Aman-CERP/docrank/internal/search"
	"github.com/Aman-CERP/docrank/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var jsonOutput bool
	var indexFile string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the index exists and what it holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := loadProject(cmd, "")
			if err != nil {
				return err
			}
			indexPath, err := p.indexPath(indexFile)
			if err != nil {
				return err
			}
			format, err := p.format("")
			if err != nil {
				return drerrors.New(drerrors.ErrCodeConfigInvalid, err.Error(), err)
			}

			engine, err := search.NewEngine(indexPath, p.searchOptions(format), 0)
			if err != nil {
				return err
			}
			st, err := engine.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return output.JSON(out, st)
			}
			ui.RenderStatus(out, st, ui.GetStyles(!ui.UseColor(out)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")
	cmd.Flags().StringVar(&indexFile, "index", "", "Index file (default: <root>/data/bm25_index.csv)")

	return cmd
}

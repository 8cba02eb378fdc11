package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/Aman-CERP/docrank/internal/search"
)

// RenderResults writes search results as numbered blocks:
//
//	1. docs/setup.md  # Install  (score 2.31)
//	    preview text
func RenderResults(w io.Writer, query string, results []search.Result, styles Styles) {
	if len(results) == 0 {
		_, _ = fmt.Fprintf(w, "%s\n", styles.Dim.Render(fmt.Sprintf("No results for %q", query)))
		return
	}

	_, _ = fmt.Fprintf(w, "%s\n\n", styles.Header.Render(fmt.Sprintf("%d results for %q", len(results), query)))
	for _, r := range results {
		_, _ = fmt.Fprintf(w, "%s %s  %s  %s\n",
			styles.Rank.Render(fmt.Sprintf("%d.", r.Rank)),
			styles.Path.Render(r.FilePath),
			styles.Section.Render(r.Section),
			styles.Score.Render(fmt.Sprintf("(score %.2f)", r.Score)))
		for _, line := range previewLines(r.ContentPreview) {
			_, _ = fmt.Fprintf(w, "    %s\n", styles.Preview.Render(line))
		}
		_, _ = fmt.Fprintln(w)
	}
}

// previewLines drops blank lines so each result stays compact. Lines are
// styled one at a time; a multi-line Render would pad them to equal width.
func previewLines(s string) []string {
	var kept []string
	for _, l := range strings.Split(s, "\n") {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, strings.TrimRight(l, " \t\r"))
		}
	}
	return kept
}

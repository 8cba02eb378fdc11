package mcp

import (
	"fmt"
	"strings"

	"github.com/Aman-CERP/docrank/internal/search"
)

// FormatResults renders results as markdown for clients that only read
// text content.
func FormatResults(query string, results []search.Result) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for \"%s\"", query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Results for \"%s\"\n\n", query)
	fmt.Fprintf(&sb, "Found %d result", len(results))
	if len(results) != 1 {
		sb.WriteString("s")
	}
	sb.WriteString("\n\n")

	for _, r := range results {
		fmt.Fprintf(&sb, "### %d. %s\n\n", r.Rank, r.FilePath)
		fmt.Fprintf(&sb, "**Section:** %s | **Score:** %.2f\n\n", r.Section, r.Score)
		sb.WriteString(quote(r.ContentPreview))
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// FormatStatus renders an index status as markdown.
func FormatStatus(st IndexStatusOutput) string {
	if !st.Exists {
		return fmt.Sprintf("No index at `%s`. Run 'docrank index' first.", st.Path)
	}
	return fmt.Sprintf("Index `%s` (%s): %d chunks from %d files, modified %s.",
		st.Path, st.Format, st.Chunks, st.Files, st.Modified)
}

// quote prefixes every line with "> " so headings in the preview do not
// break the surrounding document structure.
func quote(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("> "+l, " ")
	}
	return strings.Join(lines, "\n")
}

// clampLimit returns def for non-positive limits and caps at maxLimit.
func clampLimit(limit, def, maxLimit int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/Aman-CERP/docrank/internal/search"
)

// RenderStatus writes an index status summary.
func RenderStatus(w io.Writer, st *search.Status, styles Styles) {
	_, _ = fmt.Fprintf(w, "%s\n\n", styles.Header.Render("Index Status"))
	_, _ = fmt.Fprintf(w, "  %s %s\n", styles.Label.Render("Path:    "), st.Path)

	if !st.Exists {
		_, _ = fmt.Fprintf(w, "  %s %s\n", styles.Label.Render("State:   "), styles.Warning.Render("not built"))
		_, _ = fmt.Fprintf(w, "\n  Run 'docrank index' to build it.\n")
		return
	}

	_, _ = fmt.Fprintf(w, "  %s %s\n", styles.Label.Render("Format:  "), st.Format)
	_, _ = fmt.Fprintf(w, "  %s %d\n", styles.Label.Render("Files:   "), st.Files)
	_, _ = fmt.Fprintf(w, "  %s %d\n", styles.Label.Render("Chunks:  "), st.Chunks)
	_, _ = fmt.Fprintf(w, "  %s %s\n", styles.Label.Render("Size:    "), formatBytes(st.Size))
	_, _ = fmt.Fprintf(w, "  %s %s\n", styles.Label.Render("Modified:"), formatTime(st.Modified))
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

func formatTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	default:
		return t.Format("2006-01-02 15:04")
	}
}

package ui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Config configures a renderer.
type Config struct {
	Output  io.Writer
	NoColor bool
	// Quiet drops per-file lines and keeps warnings and the summary.
	Quiet bool
}

// NewConfig returns a Config for out, colored only when out is a terminal
// and neither NO_COLOR nor a CI variable is set.
func NewConfig(out io.Writer) Config {
	return Config{
		Output:  out,
		NoColor: !UseColor(out) || DetectCI(),
	}
}

// CompletionStats summarizes a finished indexing run.
type CompletionStats struct {
	IndexPath string
	Files     int
	Chunks    int
	Skipped   int
	Duration  time.Duration
}

// IndexRenderer prints indexing progress line by line. It is safe for
// concurrent use so watch-mode rebuilds can share one renderer.
type IndexRenderer struct {
	mu     sync.Mutex
	cfg    Config
	styles Styles
}

// NewIndexRenderer creates a renderer for cfg.
func NewIndexRenderer(cfg Config) *IndexRenderer {
	return &IndexRenderer{cfg: cfg, styles: GetStyles(cfg.NoColor)}
}

// Start announces a run over root.
func (r *IndexRenderer) Start(root string) {
	r.printf("%s\n", r.styles.Header.Render(fmt.Sprintf("Indexing files in %s...", root)))
}

// FileProcessed reports one file read for chunking.
func (r *IndexRenderer) FileProcessed(relPath string) {
	if r.cfg.Quiet {
		return
	}
	r.printf("%s %s\n", r.styles.Label.Render("Processing:"), relPath)
}

// FileSkipped reports a file that could not be read.
func (r *IndexRenderer) FileSkipped(relPath string, err error) {
	r.Warn(fmt.Sprintf("Error processing %s: %v", relPath, err))
}

// Warn prints a warning line, even when quiet.
func (r *IndexRenderer) Warn(msg string) {
	r.printf("%s\n", r.styles.Warning.Render(msg))
}

// Complete prints the run summary.
func (r *IndexRenderer) Complete(stats CompletionStats) {
	msg := fmt.Sprintf("Successfully indexed %d chunks from %d files into %s",
		stats.Chunks, stats.Files, stats.IndexPath)
	if stats.Skipped > 0 {
		msg += fmt.Sprintf(" (%d skipped)", stats.Skipped)
	}
	r.printf("%s %s\n", r.styles.Success.Render(msg), r.styles.Dim.Render(stats.Duration.Round(time.Millisecond).String()))
}

// Failed prints a failed run.
func (r *IndexRenderer) Failed(err error) {
	r.printf("%s\n", r.styles.Error.Render(fmt.Sprintf("Indexing failed: %v", err)))
}

func (r *IndexRenderer) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintf(r.cfg.Output, format, args...)
}

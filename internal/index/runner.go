// Package index runs indexing sessions: scan the documentation tree, split
// every file into chunks and persist the full chunk list.
//
// A Runner owns the chunk-id sequence for each run, so ids are dense and
// start at 1 every time. There are no incremental updates; watch mode
// simply runs the whole session again.
package index

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Aman-CERP/docrank/internal/chunk"
	drerrors "github.com/Aman-CERP/docrank/internal/errors"
	"github.com/Aman-CERP/docrank/internal/scanner"
	"github.com/Aman-CERP/docrank/internal/store"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Options configures a Runner.
type Options struct {
	// Scan is the walk policy. Scan.RootDir is the project root.
	Scan scanner.Options

	// IndexPath is where the chunk list is written.
	IndexPath string

	// Format selects the store backend. Empty or auto detects by extension.
	Format store.Format

	// OnFile, if set, is called before each file is read.
	OnFile func(relPath string)

	// Logger receives structured run events. Nil uses slog.Default().
	Logger *slog.Logger
}

// SkippedFile records a file that could not be indexed.
type SkippedFile struct {
	Path string
	Err  error
}

// Result summarizes one indexing run.
type Result struct {
	RunID     string
	IndexPath string
	Files     int // Files read successfully
	Chunks    int
	Skipped   []SkippedFile
	Duration  time.Duration
}

// Runner performs indexing sessions.
type Runner struct {
	opts    Options
	scanner *scanner.Scanner
	store   store.Store
	chunker *chunk.MarkdownChunker
	logger  *slog.Logger
}

// New validates opts and creates a Runner.
func New(opts Options) (*Runner, error) {
	if opts.IndexPath == "" {
		return nil, drerrors.New(drerrors.ErrCodeInvalidPath, "index path is required", nil)
	}

	sc, err := scanner.New(opts.Scan)
	if err != nil {
		return nil, drerrors.New(drerrors.ErrCodeInvalidPath, err.Error(), err).
			WithDetail("root", opts.Scan.RootDir)
	}

	st, err := store.NewStoreForPath(opts.IndexPath, opts.Format)
	if err != nil {
		return nil, drerrors.New(drerrors.ErrCodeConfigInvalid, err.Error(), err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		opts:    opts,
		scanner: sc,
		store:   st,
		chunker: chunk.NewMarkdownChunker(),
		logger:  logger,
	}, nil
}

// Scanner returns the runner's scanner.
func (r *Runner) Scanner() *scanner.Scanner {
	return r.scanner
}

// Run performs one full indexing session and saves the result.
// Unreadable files are logged and skipped; the run still succeeds.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	chunks, result, err := r.Build(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.store.Save(r.opts.IndexPath, chunks); err != nil {
		return nil, err
	}

	r.logger.Info("index_complete",
		slog.String("run_id", result.RunID),
		slog.String("path", result.IndexPath),
		slog.Int("files", result.Files),
		slog.Int("chunks", result.Chunks),
		slog.Int("skipped", len(result.Skipped)),
		slog.Duration("duration", result.Duration))

	return result, nil
}

// Build scans and chunks without persisting anything.
func (r *Runner) Build(ctx context.Context) ([]chunk.Chunk, *Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := r.logger.With(slog.String("run_id", runID))

	logger.Info("index_started",
		slog.String("root", r.scanner.Root()),
		slog.String("path", r.opts.IndexPath))

	files, err := r.scanner.Scan(ctx)
	if err != nil {
		return nil, nil, drerrors.New(drerrors.ErrCodeIndexFailed, fmt.Sprintf("scan failed: %v", err), err)
	}

	result := &Result{RunID: runID, IndexPath: r.opts.IndexPath}
	ids := chunk.NewIDSequence()
	chunks := []chunk.Chunk{}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		if r.opts.OnFile != nil {
			r.opts.OnFile(f.Path)
		}
		logger.Info("processing", slog.String("file", f.Path))

		content, err := readDocument(f.AbsPath)
		if err != nil {
			logger.Warn("file_skipped",
				slog.String("file", f.Path),
				slog.String("error", err.Error()))
			result.Skipped = append(result.Skipped, SkippedFile{Path: f.Path, Err: err})
			continue
		}

		extracted := r.chunker.Chunk(&chunk.FileInput{Path: f.Path, Content: content}, ids)
		chunks = append(chunks, extracted...)
		result.Files++

		logger.Debug("file_chunked",
			slog.String("file", f.Path),
			slog.Int("chunks", len(extracted)))
	}

	result.Chunks = len(chunks)
	result.Duration = time.Since(start)
	return chunks, result, nil
}

// readDocument reads a whole file as UTF-8 text. A leading BOM is dropped.
// The file is read fully before chunking, so a failure never consumes ids.
func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := drerrors.ErrCodeFileUnreadable
		if errors.Is(err, os.ErrPermission) {
			code = drerrors.ErrCodeFilePermission
		}
		return nil, drerrors.New(code, fmt.Sprintf("cannot read %s", path), err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, drerrors.New(drerrors.ErrCodeFileUnreadable, fmt.Sprintf("%s is not valid UTF-8", path), nil)
	}
	return data, nil
}

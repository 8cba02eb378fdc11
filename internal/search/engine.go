package search

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/Aman-CERP/docrank/internal/store"
)

// Engine answers queries against one index path. Each query sees the index
// as it is on disk at that moment.
type Engine struct {
	path  string
	opts  Options
	cache *SessionCache
}

// NewEngine creates an engine. cacheSize 0 disables the session cache,
// so every query loads and fits the index afresh.
func NewEngine(path string, opts Options, cacheSize int) (*Engine, error) {
	e := &Engine{path: path, opts: opts.withDefaults()}
	if cacheSize > 0 {
		cache, err := NewSessionCache(cacheSize)
		if err != nil {
			return nil, err
		}
		e.cache = cache
	}
	return e, nil
}

// Path returns the index path.
func (e *Engine) Path() string {
	return e.path
}

// Session returns a fitted session for the current index.
func (e *Engine) Session() (*Session, error) {
	if e.cache == nil {
		return Open(e.path, e.opts)
	}

	s, hit, err := e.cache.Open(e.path, e.opts)
	if err != nil {
		return nil, err
	}
	slog.Debug("session_resolved", slog.String("path", e.path), slog.Bool("cache_hit", hit))
	return s, nil
}

// Search runs q against the current index.
func (e *Engine) Search(q Query) ([]Result, error) {
	start := time.Now()

	s, err := e.Session()
	if err != nil {
		return nil, err
	}
	results := s.Query(q)

	slog.Info("search_complete",
		slog.String("query", q.Text),
		slog.Int("limit", q.Limit),
		slog.Int("results", len(results)),
		slog.Duration("duration", time.Since(start)))

	return results, nil
}

// Status describes the index an engine reads.
type Status struct {
	Path     string    `json:"path"`
	Exists   bool      `json:"exists"`
	Format   string    `json:"format,omitempty"`
	Chunks   int       `json:"chunks"`
	Files    int       `json:"files"`
	Size     int64     `json:"size_bytes,omitempty"`
	Modified time.Time `json:"modified"`
}

// Status reports whether the index exists and what it holds.
// A missing index is not an error.
func (e *Engine) Status() (*Status, error) {
	st := &Status{Path: e.path}

	info, err := os.Stat(e.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return st, nil
		}
		return nil, err
	}

	s, err := e.Session()
	if err != nil {
		if errors.Is(err, ErrIndexMissing) {
			return st, nil
		}
		return nil, err
	}

	format := e.opts.Format
	if format == "" || format == store.FormatAuto {
		format = store.DetectFormat(e.path)
	}

	stats := s.Stats()
	st.Exists = true
	st.Format = string(format)
	st.Chunks = stats.Chunks
	st.Files = stats.Files
	st.Size = info.Size()
	st.Modified = info.ModTime()
	return st, nil
}

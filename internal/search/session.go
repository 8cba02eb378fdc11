package search

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Aman-CERP/docrank/internal/bm25"
	"github.com/Aman-CERP/docrank/internal/chunk"
	drerrors "github.com/Aman-CERP/docrank/internal/errors"
	"github.com/Aman-CERP/docrank/internal/store"
)

// Session is a loaded, fitted index. It is never mutated after Open.
type Session struct {
	path   string
	opts   Options
	chunks []chunk.Chunk
	stats  *bm25.CorpusStatistics
	scorer bm25.Scorer
	loaded time.Time
}

// Open loads the index at path and fits BM25 statistics over it.
// A missing index yields an error matching ErrIndexMissing.
func Open(path string, opts Options) (*Session, error) {
	opts = opts.withDefaults()

	scorer := opts.scorer()
	if err := scorer.Validate(); err != nil {
		return nil, drerrors.New(drerrors.ErrCodeConfigInvalid, err.Error(), err)
	}

	st, err := store.NewStoreForPath(path, opts.Format)
	if err != nil {
		return nil, drerrors.New(drerrors.ErrCodeConfigInvalid, err.Error(), err)
	}

	chunks, err := st.Load(path)
	if err != nil {
		if errors.Is(err, store.ErrIndexNotFound) {
			return nil, drerrors.New(drerrors.ErrCodeIndexNotFound, ErrIndexMissing.Message, err).
				WithDetail("path", path).
				WithSuggestion("Run 'docrank index' to build it")
		}
		return nil, err
	}

	return newSession(path, opts, chunks), nil
}

// NewSession fits a session over chunks already in memory.
func NewSession(chunks []chunk.Chunk, opts Options) (*Session, error) {
	opts = opts.withDefaults()
	if err := opts.scorer().Validate(); err != nil {
		return nil, drerrors.New(drerrors.ErrCodeConfigInvalid, err.Error(), err)
	}
	return newSession("", opts, chunks), nil
}

func newSession(path string, opts Options, chunks []chunk.Chunk) *Session {
	corpus := make([]string, len(chunks))
	for i, c := range chunks {
		corpus[i] = c.Content
	}

	return &Session{
		path:   path,
		opts:   opts,
		chunks: chunks,
		stats:  bm25.Fit(corpus),
		scorer: opts.scorer(),
		loaded: time.Now(),
	}
}

// Search returns up to n results with a positive score, best first.
func (s *Session) Search(query string, n int) []Result {
	return s.Query(Query{Text: query, Limit: n})
}

// Query runs q. Ties keep index (id) order. Chunks that share no term with
// the query are never returned, even when fewer than Limit results remain.
func (s *Session) Query(q Query) []Result {
	start := time.Now()
	results := []Result{}
	if q.Limit <= 0 {
		return results
	}

	inScope := scopeMatcher(q.Scopes)
	ranked := bm25.Rank(s.scorer.Score(q.Text, s.stats))

	for _, ds := range ranked {
		if len(results) >= q.Limit || ds.Score <= 0 {
			break
		}
		c := s.chunks[ds.Index]
		if !inScope(c.FilePath) {
			continue
		}
		results = append(results, Result{
			Rank:           len(results) + 1,
			ID:             c.ID,
			Score:          RoundScore(ds.Score),
			RawScore:       ds.Score,
			FilePath:       c.FilePath,
			Section:        c.Section,
			ContentPreview: Preview(c.Content, s.opts.PreviewChars),
		})
	}

	slog.Debug("search_complete",
		slog.String("query", q.Text),
		slog.Int("results", len(results)),
		slog.Int("corpus_size", s.stats.CorpusSize),
		slog.Duration("duration", time.Since(start)))

	return results
}

// Ranked returns every chunk index with its raw score, best first, zero
// scores included.
func (s *Session) Ranked(query string) []bm25.DocScore {
	return bm25.Rank(s.scorer.Score(query, s.stats))
}

// Stats summarizes the loaded index.
func (s *Session) Stats() store.IndexStats {
	return store.Summarize(s.chunks)
}

// Statistics exposes the fitted corpus statistics.
func (s *Session) Statistics() *bm25.CorpusStatistics {
	return s.stats
}

// Path returns the index path the session was loaded from.
func (s *Session) Path() string {
	return s.path
}

// String implements fmt.Stringer for log output.
func (s *Session) String() string {
	return fmt.Sprintf("session(%s, %d chunks)", s.path, len(s.chunks))
}

// LoadedAt returns when the session was fitted.
func (s *Session) LoadedAt() time.Time {
	return s.loaded
}

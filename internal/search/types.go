// Package search answers queries against a persisted index.
//
// A Session loads the chunk list, fits BM25 statistics over every chunk's
// content and scores queries against them. Sessions are immutable once
// open and safe for concurrent Search calls. An Engine opens a session per
// query, optionally reusing fitted sessions from an LRU cache keyed by the
// index file's content hash.
package search

import (
	"math"

	"github.com/Aman-CERP/docrank/internal/bm25"
	drerrors "github.com/Aman-CERP/docrank/internal/errors"
	"github.com/Aman-CERP/docrank/internal/store"
)

// DefaultPreviewChars caps content previews, in characters.
const DefaultPreviewChars = 500

// previewEllipsis marks a truncated preview.
const previewEllipsis = "..."

// ErrIndexMissing matches (via errors.Is) any search against an index that
// does not exist yet.
var ErrIndexMissing = drerrors.New(drerrors.ErrCodeIndexNotFound, "Index not found. Run 'docrank index' first.", nil)

// Result is one presented search hit.
type Result struct {
	Rank           int     `json:"rank"`
	ID             int     `json:"id"`
	Score          float64 `json:"score"`
	FilePath       string  `json:"file_path"`
	Section        string  `json:"section"`
	ContentPreview string  `json:"content_preview"`

	// RawScore is the unrounded BM25 score.
	RawScore float64 `json:"-"`
}

// Options configures how sessions are opened and results presented.
type Options struct {
	// K1 and B are the BM25 constants.
	K1 float64
	B  float64

	// PreviewChars caps ContentPreview. Zero uses DefaultPreviewChars.
	PreviewChars int

	// Format selects the store backend. Empty or auto detects by extension.
	Format store.Format
}

// DefaultOptions returns the standard BM25 constants and preview length.
func DefaultOptions() Options {
	return Options{
		K1:           bm25.DefaultK1,
		B:            bm25.DefaultB,
		PreviewChars: DefaultPreviewChars,
		Format:       store.FormatAuto,
	}
}

func (o Options) withDefaults() Options {
	if o.PreviewChars <= 0 {
		o.PreviewChars = DefaultPreviewChars
	}
	return o
}

func (o Options) scorer() bm25.Scorer {
	return bm25.Scorer{K1: o.K1, B: o.B}
}

// RoundScore rounds a score to two decimals for display.
func RoundScore(score float64) float64 {
	return math.Round(score*100) / 100
}

// Preview truncates content to limit characters (runes), appending "..."
// when anything was cut.
func Preview(content string, limit int) string {
	if limit <= 0 {
		return content
	}
	n := 0
	for i := range content {
		if n == limit {
			return content[:i] + previewEllipsis
		}
		n++
	}
	return content
}

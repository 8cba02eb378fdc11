// Package store persists the chunk list produced by an indexing run.
//
// Two backends share one contract: CSV (the default, with header
// id,file_path,type,content) and SQLite. Both satisfy Load(Save(c)) == c.
package store

import (
	"fmt"

	"github.com/Aman-CERP/docrank/internal/chunk"
	drerrors "github.com/Aman-CERP/docrank/internal/errors"
)

// Store saves and loads a full chunk list. There are no partial updates.
type Store interface {
	// Save replaces whatever is at path with chunks.
	Save(path string, chunks []chunk.Chunk) error

	// Load reads every chunk at path in id order.
	// A missing path yields an error matching ErrIndexNotFound.
	Load(path string) ([]chunk.Chunk, error)
}

// Columns is the persisted column order. The section is stored as "type".
var Columns = []string{"id", "file_path", "type", "content"}

// ErrIndexNotFound matches (via errors.Is) any load of a path that does not exist.
var ErrIndexNotFound = drerrors.New(drerrors.ErrCodeIndexNotFound, "index not found", nil)

// ErrCorruptIndex matches any load that hit a malformed row or schema.
var ErrCorruptIndex = drerrors.New(drerrors.ErrCodeCorruptIndex, "index is corrupt", nil)

func notFoundError(path string, cause error) error {
	return drerrors.New(drerrors.ErrCodeIndexNotFound, fmt.Sprintf("index not found at %s", path), cause).
		WithDetail("path", path).
		WithSuggestion("Run 'docrank index' first")
}

func corruptError(path string, row int, reason string) error {
	msg := fmt.Sprintf("index %s: %s", path, reason)
	if row > 0 {
		msg = fmt.Sprintf("index %s row %d: %s", path, row, reason)
	}
	return drerrors.New(drerrors.ErrCodeCorruptIndex, msg, nil).
		WithDetail("path", path).
		WithSuggestion("Rebuild the index with 'docrank index'")
}

func writeError(path string, cause error) error {
	return drerrors.New(drerrors.ErrCodeIndexWrite, fmt.Sprintf("failed to write index %s: %v", path, cause), cause).
		WithDetail("path", path)
}

// IndexStats summarizes a loaded chunk list.
type IndexStats struct {
	Chunks int `json:"chunks"`
	Files  int `json:"files"`
}

// Summarize counts chunks and distinct source files.
func Summarize(chunks []chunk.Chunk) IndexStats {
	files := make(map[string]struct{})
	for _, c := range chunks {
		files[c.FilePath] = struct{}{}
	}
	return IndexStats{Chunks: len(chunks), Files: len(files)}
}

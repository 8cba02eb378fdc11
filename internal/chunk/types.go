package chunk

import "path"

// Chunk is one indexed unit: the body text between two markdown headers.
type Chunk struct {
	ID       int    // Dense, 1-based, assigned in extraction order across a run
	FilePath string // Relative to project root, slash separated
	Section  string // Most recent header line, or the file's base name
	Content  string // Trimmed body text, never blank
}

// FileInput is a document handed to the chunker.
type FileInput struct {
	Path    string // Relative path, slash separated
	Content []byte
}

// DefaultSection is the section name used before the first header of a file.
func DefaultSection(relPath string) string {
	return path.Base(relPath)
}

// IDSequence hands out chunk ids for one indexing session.
// The zero value is not ready for use; call NewIDSequence.
type IDSequence struct {
	next int
}

// NewIDSequence returns a sequence whose first id is 1.
func NewIDSequence() *IDSequence {
	return &IDSequence{next: 1}
}

// Next returns the next id and advances the sequence.
func (s *IDSequence) Next() int {
	id := s.next
	s.next++
	return id
}

// Peek returns the id Next would return, without advancing.
func (s *IDSequence) Peek() int {
	return s.next
}

// Issued returns how many ids have been handed out.
func (s *IDSequence) Issued() int {
	return s.next - 1
}

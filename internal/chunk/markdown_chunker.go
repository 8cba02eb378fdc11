package chunk

import (
	"regexp"
	"strings"
)

// headerPattern matches a markdown header line: one or more '#', a space, then text.
var headerPattern = regexp.MustCompile(`^#+ .*$`)

// scanState is the state of the line scanner.
type scanState int

const (
	// AwaitingContent means the pending segment holds nothing but whitespace.
	AwaitingContent scanState = iota
	// SectionActive means the pending segment holds text that will become a chunk.
	SectionActive
)

func (s scanState) String() string {
	switch s {
	case AwaitingContent:
		return "awaiting_content"
	case SectionActive:
		return "section_active"
	default:
		return "unknown"
	}
}

// MarkdownChunker splits markdown documents into header-scoped chunks.
// It holds no state between calls.
type MarkdownChunker struct{}

// NewMarkdownChunker creates a new markdown chunker.
func NewMarkdownChunker() *MarkdownChunker {
	return &MarkdownChunker{}
}

// SupportedExtensions returns file extensions this chunker handles.
func (c *MarkdownChunker) SupportedExtensions() []string {
	return []string{".md"}
}

// Chunk splits file into chunks, drawing ids from ids.
func (c *MarkdownChunker) Chunk(file *FileInput, ids *IDSequence) []Chunk {
	return Extract(string(file.Content), file.Path, ids)
}

// Extract walks text line by line. A header line closes the pending body
// segment and becomes the section of the chunks that follow; it is not part
// of any chunk's content. A segment that is blank after trimming is dropped
// and consumes no id.
func Extract(text, relPath string, ids *IDSequence) []Chunk {
	sc := &lineScanner{
		relPath: relPath,
		section: DefaultSection(relPath),
		ids:     ids,
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if headerPattern.MatchString(line) {
			sc.flush()
			sc.section = strings.TrimSpace(line)
			continue
		}
		sc.append(line)
	}
	sc.flush()

	return sc.chunks
}

type lineScanner struct {
	relPath string
	section string
	ids     *IDSequence

	state   scanState
	pending []string
	chunks  []Chunk
}

func (sc *lineScanner) append(line string) {
	sc.pending = append(sc.pending, line)
	if sc.state == AwaitingContent && strings.TrimSpace(line) != "" {
		sc.state = SectionActive
	}
}

func (sc *lineScanner) flush() {
	defer func() {
		sc.pending = sc.pending[:0]
		sc.state = AwaitingContent
	}()

	if sc.state != SectionActive {
		return
	}

	sc.chunks = append(sc.chunks, Chunk{
		ID:       sc.ids.Next(),
		FilePath: sc.relPath,
		Section:  sc.section,
		Content:  strings.TrimSpace(strings.Join(sc.pending, "\n")),
	})
}

package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Aman-CERP/docrank/internal/chunk"
)

// utf8BOM is stripped from the first header cell when present.
const utf8BOM = "\ufeff"

// CSVStore persists chunks as an RFC 4180 table with a header row.
type CSVStore struct{}

// Verify interface implementation at compile time
var _ Store = (*CSVStore)(nil)

// NewCSVStore creates a CSV-backed store.
func NewCSVStore() *CSVStore {
	return &CSVStore{}
}

// Save writes chunks to a temporary file in the target directory and
// renames it over path, so readers never see a partial table.
func (s *CSVStore) Save(path string, chunks []chunk.Chunk) error {
	lock := NewFileLock(path)
	if err := lock.Lock(); err != nil {
		return writeError(path, err)
	}
	defer func() { _ = lock.Unlock() }()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return writeError(path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return writeError(path, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := writeCSV(tmp, chunks); err != nil {
		return writeError(path, err)
	}
	if err := tmp.Sync(); err != nil {
		return writeError(path, err)
	}
	if err := tmp.Close(); err != nil {
		return writeError(path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return writeError(path, err)
	}
	committed = true

	slog.Debug("index_saved",
		slog.String("path", path),
		slog.String("format", string(FormatCSV)),
		slog.Int("chunks", len(chunks)))
	return nil
}

func writeCSV(w io.Writer, chunks []chunk.Chunk) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	record := make([]string, len(Columns))
	for _, c := range chunks {
		record[0] = strconv.Itoa(c.ID)
		record[1] = c.FilePath
		record[2] = c.Section
		record[3] = c.Content
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Load reads the table at path. Any row that does not parse into the four
// columns with a positive integer id fails the whole load.
func (s *CSVStore) Load(path string) ([]chunk.Chunk, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, notFoundError(path, err)
		}
		return nil, fmt.Errorf("failed to stat index: %w", err)
	}

	// Shared lock is best effort; the rename in Save already keeps reads whole.
	lock := NewFileLock(path)
	if err := lock.RLock(); err != nil {
		slog.Debug("index_read_lock_skipped", slog.String("path", path), slog.String("error", err.Error()))
	}
	defer func() { _ = lock.Unlock() }()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, notFoundError(path, err)
		}
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	defer f.Close()

	return readCSV(f, path)
}

// quotedCRLF stands in for a CR-LF inside a quoted field while the table is
// parsed. encoding/csv folds such pairs to a bare LF; 0xFF never occurs in
// valid UTF-8, so the marker cannot collide with content.
const quotedCRLF = "\xff\n"

// protectQuotedCRLF replaces every CR-LF inside a quoted field with
// quotedCRLF. Quote state toggles on each '"', which also holds for the
// doubled "" escape. Row terminators are left alone.
func protectQuotedCRLF(data []byte) ([]byte, bool) {
	if !utf8.Valid(data) || !bytes.Contains(data, []byte("\r\n")) {
		return data, false
	}

	out := make([]byte, 0, len(data))
	inQuotes := false
	protected := false
	for i := 0; i < len(data); i++ {
		b := data[i]
		switch {
		case b == '"':
			inQuotes = !inQuotes
		case inQuotes && b == '\r' && i+1 < len(data) && data[i+1] == '\n':
			out = append(out, quotedCRLF...)
			i++
			protected = true
			continue
		}
		out = append(out, b)
	}
	return out, protected
}

func readCSV(r io.Reader, path string) ([]chunk.Chunk, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	data, protected := protectQuotedCRLF(data)
	restore := func(field string) string {
		if !protected {
			return field
		}
		return strings.ReplaceAll(field, quotedCRLF, "\r\n")
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = len(Columns)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, corruptError(path, 0, "missing header row")
		}
		return nil, corruptError(path, 1, err.Error())
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	for i, col := range Columns {
		if header[i] != col {
			return nil, corruptError(path, 1, fmt.Sprintf("unexpected header %q, want %q", strings.Join(header, ","), strings.Join(Columns, ",")))
		}
	}

	chunks := []chunk.Chunk{}
	for row := 2; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, corruptError(path, row, err.Error())
		}

		id, err := strconv.Atoi(record[0])
		if err != nil || id <= 0 {
			return nil, corruptError(path, row, fmt.Sprintf("invalid id %q", record[0]))
		}

		chunks = append(chunks, chunk.Chunk{
			ID:       id,
			FilePath: restore(record[1]),
			Section:  restore(record[2]),
			Content:  restore(record[3]),
		})
	}

	return chunks, nil
}

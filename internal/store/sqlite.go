package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/Aman-CERP/docrank/internal/chunk"
)

// schemaVersion is bumped when the chunks table layout changes.
const schemaVersion = 1

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS chunks (
	id        INTEGER PRIMARY KEY,
	file_path TEXT NOT NULL,
	type      TEXT NOT NULL,
	content   TEXT NOT NULL
);
`

// SQLiteStore persists the same four columns as CSVStore in a SQLite table.
// Save replaces the table inside one transaction.
type SQLiteStore struct{}

// Verify interface implementation at compile time
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a SQLite-backed store.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// sqliteDSN builds a file: URI for path. The path is escaped so that '?',
// '#' and '%' in directory names stay part of the file name.
func sqliteDSN(path, mode string) string {
	u := &url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	if mode != "" {
		u.RawQuery = url.Values{"mode": {mode}}.Encode()
	}
	return u.String()
}

func openSQLite(dsn string) (*sql.DB, error) {
	// IMPORTANT: modernc.org/sqlite registers as "sqlite", not "sqlite3"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection: one writer, and pragmas apply to every statement.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}
	return db, nil
}

// Save writes chunks to the database at path, creating it if needed.
func (s *SQLiteStore) Save(path string, chunks []chunk.Chunk) (err error) {
	lock := NewFileLock(path)
	if err := lock.Lock(); err != nil {
		return writeError(path, err)
	}
	defer func() { _ = lock.Unlock() }()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return writeError(path, err)
	}

	db, err := openSQLite(sqliteDSN(path, "rwc"))
	if err != nil {
		return writeError(path, err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = writeError(path, cerr)
		}
	}()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return writeError(path, fmt.Errorf("failed to create schema: %w", err))
	}

	tx, err := db.Begin()
	if err != nil {
		return writeError(path, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return writeError(path, err)
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return writeError(path, err)
	}
	if _, err := tx.Exec("DELETE FROM chunks"); err != nil {
		return writeError(path, err)
	}

	stmt, err := tx.Prepare("INSERT INTO chunks (id, file_path, type, content) VALUES (?, ?, ?, ?)")
	if err != nil {
		return writeError(path, err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		if _, err := stmt.Exec(c.ID, c.FilePath, c.Section, c.Content); err != nil {
			return writeError(path, fmt.Errorf("chunk %d: %w", c.ID, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return writeError(path, err)
	}

	slog.Debug("index_saved",
		slog.String("path", path),
		slog.String("format", string(FormatSQLite)),
		slog.Int("chunks", len(chunks)))
	return nil
}

// Load reads every chunk from the database at path in id order.
func (s *SQLiteStore) Load(path string) ([]chunk.Chunk, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, notFoundError(path, err)
		}
		return nil, fmt.Errorf("failed to stat index: %w", err)
	}
	if info.Size() == 0 {
		return nil, corruptError(path, 0, "empty database file")
	}

	lock := NewFileLock(path)
	if err := lock.RLock(); err != nil {
		slog.Debug("index_read_lock_skipped", slog.String("path", path), slog.String("error", err.Error()))
	}
	defer func() { _ = lock.Unlock() }()

	db, err := openSQLite(sqliteDSN(path, "ro"))
	if err != nil {
		return nil, corruptError(path, 0, err.Error())
	}
	defer db.Close()

	var version int
	if err := db.QueryRow("SELECT version FROM schema_version").Scan(&version); err != nil {
		return nil, corruptError(path, 0, fmt.Sprintf("cannot read schema version: %v", err))
	}
	if version != schemaVersion {
		return nil, corruptError(path, 0, fmt.Sprintf("unsupported schema version %d", version))
	}

	rows, err := db.Query("SELECT id, file_path, type, content FROM chunks ORDER BY id")
	if err != nil {
		return nil, corruptError(path, 0, err.Error())
	}
	defer rows.Close()

	chunks := []chunk.Chunk{}
	for row := 1; rows.Next(); row++ {
		var c chunk.Chunk
		if err := rows.Scan(&c.ID, &c.FilePath, &c.Section, &c.Content); err != nil {
			return nil, corruptError(path, row, err.Error())
		}
		if c.ID <= 0 {
			return nil, corruptError(path, row, fmt.Sprintf("invalid id %d", c.ID))
		}
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, corruptError(path, 0, err.Error())
	}

	return chunks, nil
}

package store

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format names a persistence backend.
type Format string

const (
	// FormatCSV is the default: a flat table with header id,file_path,type,content.
	FormatCSV Format = "csv"

	// FormatSQLite keeps the same columns in a SQLite table.
	FormatSQLite Format = "sqlite"

	// FormatAuto picks the backend from the index file extension.
	FormatAuto Format = "auto"
)

// ParseFormat validates a configured format name. Empty means auto.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatSQLite:
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unknown index format: %s (valid options: csv, sqlite, auto)", s)
	}
}

// DetectFormat picks a backend from the path extension.
// .db, .sqlite and .sqlite3 select SQLite; anything else is CSV.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatCSV
	}
}

// NewStore creates the store for format.
func NewStore(format Format) (Store, error) {
	switch format {
	case FormatCSV:
		return NewCSVStore(), nil
	case FormatSQLite:
		return NewSQLiteStore(), nil
	default:
		return nil, fmt.Errorf("unknown index format: %s (valid options: csv, sqlite)", format)
	}
}

// NewStoreForPath resolves format against path and creates the store.
// FormatAuto (or empty) defers to DetectFormat.
func NewStoreForPath(path string, format Format) (Store, error) {
	if format == "" || format == FormatAuto {
		format = DetectFormat(path)
	}
	return NewStore(format)
}

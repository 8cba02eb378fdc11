// Package scanner discovers the documentation files an indexing run reads.
//
// The walk policy is fixed by Options: a list of folders walked recursively,
// optionally the markdown files directly under the root, and a set of noise
// directory patterns that are never entered.
package scanner

import "time"

// DefaultFolders are the scan folders, relative to the project root, in walk order.
var DefaultFolders = []string{
	"agent/rules",
	"agent/rules/project",
	"agent/rules/archive",
	"agent/workflows",
	"agent/skills",
	"agent/reference",
	"docs",
	"documentation",
}

// DefaultExtensions are the indexable file extensions (matched case-insensitively).
var DefaultExtensions = []string{".md"}

// DefaultSkipDirs are substrings that exclude any path segment containing them.
var DefaultSkipDirs = []string{"__pycache__", "node_modules", ".git"}

// FileInfo describes a discovered file.
type FileInfo struct {
	Path    string    // Relative to project root, slash separated
	AbsPath string    // Absolute path
	Folder  string    // Scan folder that reached the file ("" for root files)
	Size    int64     // File size in bytes
	ModTime time.Time // Last modification time
}

// Options configures the walk.
type Options struct {
	// RootDir is the project root. Relative paths are resolved against it.
	RootDir string

	// Folders are walked recursively, in order. Missing folders are skipped.
	Folders []string

	// RootFiles includes matching files directly under RootDir, without recursion.
	RootFiles bool

	// Extensions selects files by suffix (case-insensitive). Empty means DefaultExtensions.
	Extensions []string

	// SkipDirs excludes any path segment containing one of these substrings.
	SkipDirs []string
}

// DefaultOptions returns the standard walk policy for root.
func DefaultOptions(root string) Options {
	return Options{
		RootDir:    root,
		Folders:    append([]string(nil), DefaultFolders...),
		RootFiles:  true,
		Extensions: append([]string(nil), DefaultExtensions...),
		SkipDirs:   append([]string(nil), DefaultSkipDirs...),
	}
}

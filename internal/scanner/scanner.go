package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner discovers indexable files under a project root.
type Scanner struct {
	opts    Options
	absRoot string
}

// New creates a Scanner for opts. The root must be an existing directory.
func New(opts Options) (*Scanner, error) {
	root := opts.RootDir
	if root == "" {
		root = "."
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path is not a directory: %s", absRoot)
	}

	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	opts.RootDir = absRoot

	return &Scanner{opts: opts, absRoot: absRoot}, nil
}

// Root returns the absolute project root.
func (s *Scanner) Root() string {
	return s.absRoot
}

// Scan walks every scan folder, then the root-level files, and returns each
// matching file once. A file reachable from several folders is reported
// under the first. Within a directory, entries are visited in lexical order.
//
// Unreadable directories are logged and skipped; only cancellation aborts.
func (s *Scanner) Scan(ctx context.Context) ([]FileInfo, error) {
	seen := make(map[string]struct{})
	var files []FileInfo

	add := func(fi FileInfo) {
		if _, dup := seen[fi.Path]; dup {
			return
		}
		seen[fi.Path] = struct{}{}
		files = append(files, fi)
	}

	for _, folder := range s.opts.Folders {
		if err := s.walkFolder(ctx, folder, add); err != nil {
			return nil, err
		}
	}

	if s.opts.RootFiles {
		if err := s.listRoot(ctx, add); err != nil {
			return nil, err
		}
	}

	return files, nil
}

// walkFolder recursively collects matching files under folder.
func (s *Scanner) walkFolder(ctx context.Context, folder string, add func(FileInfo)) error {
	folder = filepath.ToSlash(filepath.Clean(folder))
	absFolder := filepath.Join(s.absRoot, filepath.FromSlash(folder))

	info, err := os.Stat(absFolder)
	if err != nil || !info.IsDir() {
		return nil
	}

	return filepath.WalkDir(absFolder, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		relPath, relErr := s.relative(path)
		if relErr != nil {
			return nil
		}

		if err != nil {
			slog.Warn("scan_path_unreadable",
				slog.String("path", relPath),
				slog.String("error", err.Error()))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if s.ShouldSkipDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.HasIndexableExtension(relPath) {
			return nil
		}

		fi, ok := s.fileInfo(path, relPath, d)
		if !ok {
			return nil
		}
		fi.Folder = folder
		add(fi)
		return nil
	})
}

// listRoot collects matching regular files directly under the root.
func (s *Scanner) listRoot(ctx context.Context, add func(FileInfo)) error {
	entries, err := os.ReadDir(s.absRoot)
	if err != nil {
		return fmt.Errorf("failed to read root directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, d := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !s.HasIndexableExtension(d.Name()) {
			continue
		}
		fi, ok := s.fileInfo(filepath.Join(s.absRoot, d.Name()), d.Name(), d)
		if !ok {
			continue
		}
		add(fi)
	}
	return nil
}

// fileInfo stats a candidate. Symlinks count only when they resolve to a regular file.
func (s *Scanner) fileInfo(absPath, relPath string, d fs.DirEntry) (FileInfo, bool) {
	var (
		info fs.FileInfo
		err  error
	)
	if d.Type()&fs.ModeSymlink != 0 {
		info, err = os.Stat(absPath)
	} else {
		info, err = d.Info()
	}
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("scan_path_unreadable",
				slog.String("path", relPath),
				slog.String("error", err.Error()))
		}
		return FileInfo{}, false
	}
	if !info.Mode().IsRegular() {
		return FileInfo{}, false
	}

	return FileInfo{
		Path:    filepath.ToSlash(relPath),
		AbsPath: absPath,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, true
}

func (s *Scanner) relative(absPath string) (string, error) {
	rel, err := filepath.Rel(s.absRoot, absPath)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// ShouldSkipDir reports whether any segment of the directory path relPath
// contains a skip pattern.
func (s *Scanner) ShouldSkipDir(relPath string) bool {
	segments := strings.Split(filepath.ToSlash(relPath), "/")
	for _, seg := range segments {
		if seg == "." || seg == "" {
			continue
		}
		for _, pattern := range s.opts.SkipDirs {
			if pattern != "" && strings.Contains(seg, pattern) {
				return true
			}
		}
	}
	return false
}

// HasIndexableExtension reports whether name ends with a configured extension.
func (s *Scanner) HasIndexableExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range s.opts.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// Covers reports whether relPath (slash separated, relative to the root)
// would be picked up by a scan. The watcher uses it to ignore unrelated events.
func (s *Scanner) Covers(relPath string) bool {
	relPath = filepath.ToSlash(filepath.Clean(relPath))
	if !s.HasIndexableExtension(relPath) || s.ShouldSkipDir(path.Dir(relPath)) {
		return false
	}

	if s.opts.RootFiles && !strings.Contains(relPath, "/") {
		return true
	}

	for _, folder := range s.opts.Folders {
		folder = filepath.ToSlash(filepath.Clean(folder))
		if strings.HasPrefix(relPath, folder+"/") {
			return true
		}
	}
	return false
}

// WatchDirs returns the absolute directories a watcher should observe:
// the root (for root files) and every existing scan folder and subfolder.
func (s *Scanner) WatchDirs(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var dirs []string
	add := func(dir string) {
		if _, dup := seen[dir]; dup {
			return
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}

	if s.opts.RootFiles {
		add(s.absRoot)
	}

	for _, folder := range s.opts.Folders {
		absFolder := filepath.Join(s.absRoot, filepath.FromSlash(folder))
		if info, err := os.Stat(absFolder); err != nil || !info.IsDir() {
			continue
		}
		err := filepath.WalkDir(absFolder, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil || !d.IsDir() {
				return nil
			}
			rel, relErr := s.relative(path)
			if relErr == nil && s.ShouldSkipDir(rel) {
				return filepath.SkipDir
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return dirs, nil
}

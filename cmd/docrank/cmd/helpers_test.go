package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/docrank/internal/chunk"
	"github.com/Aman-CERP/docrank/internal/store"
)

// newProject creates a project with a .git marker and the given files
// (relative path to content), chdirs into it and isolates HOME and the log
// directory.
func newProject(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0755))
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("DOCRANK_LOG_DIR", filepath.Join(home, "logs"))

	oldDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(oldDir) })

	return root
}

// run executes the CLI with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	debugMode = false
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

var sampleDocs = map[string]string{
	"README.md":                      "# Project\nOverview of the project.\n",
	"docs/git.md":                    "# Git\n## Branching\nUse feature branches and rebase before merge.\n## Commits\nWrite short commit subjects.\n",
	"agent/rules/style.md":           "# Style\nPrefer small functions.\n",
	"agent/workflows/release.md":     "# Release\nTag the release branch, then deploy.\n",
	"docs/node_modules/pkg/notes.md": "# Vendored\nbranch branch branch\n",
}

// loadIndex reads the index at path, picking the backend from its extension.
func loadIndex(t *testing.T, path string) []chunk.Chunk {
	t.Helper()

	s, err := store.NewStoreForPath(path, store.FormatAuto)
	require.NoError(t, err)
	chunks, err := s.Load(path)
	require.NoError(t, err)
	return chunks
}

package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSWatcher_EmitsFilteredBatches(t *testing.T) {
	// Given: a watcher on a docs folder that only accepts markdown
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	require.NoError(t, os.Mkdir(docs, 0755))

	w, err := New(Options{
		DebounceWindow: 50 * time.Millisecond,
		Filter:         func(rel string) bool { return strings.HasSuffix(rel, ".md") },
	})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Start(ctx, root, []string{root, docs}) }()
	time.Sleep(50 * time.Millisecond)

	// When: a markdown file and an unrelated file are written
	require.NoError(t, os.WriteFile(filepath.Join(docs, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "a.md"), []byte("# A\n"), 0644))

	// Then: one batch arrives holding only the markdown file
	select {
	case batch := <-w.Events():
		require.NotEmpty(t, batch)
		for _, ev := range batch {
			assert.Equal(t, "docs/a.md", ev.Path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for batch")
	}
}

func TestFSWatcher_ConfigChange(t *testing.T) {
	root := t.TempDir()

	w, err := New(Options{
		DebounceWindow: 50 * time.Millisecond,
		Filter:         func(string) bool { return false },
	})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Start(ctx, root, []string{root}) }()
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, ".docrank.yaml"), []byte("version: 1\n"), 0644))

	select {
	case batch := <-w.Events():
		require.Len(t, batch, 1)
		assert.Equal(t, OpConfigChange, batch[0].Operation)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for batch")
	}
}

func TestFSWatcher_StopClosesChannels(t *testing.T) {
	w, err := New(DefaultOptions())
	require.NoError(t, err)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	_, ok := <-w.Events()
	assert.False(t, ok)
	_, ok = <-w.Errors()
	assert.False(t, ok)
}

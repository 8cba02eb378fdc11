package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLogPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(LogDirEnv, dir)

		assert.Equal(t, filepath.Join(dir, "docrank.log"), DefaultLogPath())
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv(LogDirEnv, "")
		home := t.TempDir()
		t.Setenv("HOME", home)

		assert.Equal(t, filepath.Join(home, ".docrank", "logs"), DefaultLogDir())
	})
}

func TestConfigs(t *testing.T) {
	t.Setenv(LogDirEnv, t.TempDir())

	def := DefaultConfig()
	assert.Equal(t, "warn", def.Level)
	assert.Empty(t, def.FilePath)
	assert.NotNil(t, def.Stderr)

	dbg := DebugConfig()
	assert.Equal(t, "debug", dbg.Level)
	assert.Equal(t, DefaultLogPath(), dbg.FilePath)

	serve := ServeConfig("warn")
	assert.Equal(t, "warn", serve.Level)
	assert.Nil(t, serve.Stderr, "serve mode must keep stdio clean")
}

func TestSetup_StderrOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := Setup(Config{Level: "warn", Stderr: &buf})
	require.NoError(t, err)
	defer cleanup()

	logger.Info("hidden")
	logger.Warn("shown", slog.String("k", "v"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "k=v")
}

func TestSetup_FileAndStderr(t *testing.T) {
	// Given: a config writing to both a file and a buffer
	path := filepath.Join(t.TempDir(), "logs", "docrank.log")
	var buf bytes.Buffer
	logger, cleanup, err := Setup(Config{Level: "debug", FilePath: path, MaxSizeMB: 1, MaxFiles: 2, Stderr: &buf})
	require.NoError(t, err)

	// When: logging one record
	logger.Debug("index_started", slog.Int("files", 3))
	cleanup()

	// Then: both sinks received it, the file as JSON
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	entry := ParseLine(strings.TrimSpace(string(data)))
	assert.True(t, entry.Valid)
	assert.Equal(t, "index_started", entry.Msg)
	assert.Equal(t, float64(3), entry.Attrs["files"])
	assert.Contains(t, buf.String(), "index_started")
}

func TestSetup_NoSinks(t *testing.T) {
	logger, cleanup, err := Setup(Config{Level: "info"})
	require.NoError(t, err)
	cleanup()
	assert.NotPanics(t, func() { logger.Info("dropped") })
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestFindLogFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(LogDirEnv, dir)

	_, err := FindLogFile("")
	assert.Error(t, err)

	_, err = FindLogFile(filepath.Join(dir, "nope.log"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(DefaultLogPath(), []byte("{}\n"), 0o644))
	path, err := FindLogFile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLogPath(), path)
}

func TestRotatingWriter_Rotates(t *testing.T) {
	// Given: a 1MB writer keeping two backups
	path := filepath.Join(t.TempDir(), "docrank.log")
	w, err := NewRotatingWriter(path, 1, 2)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	// When: writing four files' worth
	block := bytes.Repeat([]byte("x"), 600*1024)
	for i := 0; i < 4; i++ {
		_, err := w.Write(block)
		require.NoError(t, err)
	}

	// Then: the live file plus exactly two backups remain
	assert.FileExists(t, path)
	assert.FileExists(t, path+".1")
	assert.FileExists(t, path+".2")
	assert.NoFileExists(t, path+".3")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.LessOrEqual(t, info.Size(), int64(1024*1024))
}

func TestRotatingWriter_AppendsToExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docrank.log")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	w, err := NewRotatingWriter(path, 1, 1)
	require.NoError(t, err)
	_, err = w.Write([]byte("new\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old\nnew\n", string(data))
}

func TestRotatingWriter_WriteAfterClose(t *testing.T) {
	w, err := NewRotatingWriter(filepath.Join(t.TempDir(), "docrank.log"), 1, 1)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

const sampleLog = `{"time":"2026-01-02T10:00:00.000Z","level":"DEBUG","msg":"processing","path":"docs/a.md"}
{"time":"2026-01-02T10:00:01.000Z","level":"INFO","msg":"index_complete","chunks":12}
not json
{"time":"2026-01-02T10:00:02.000Z","level":"ERROR","msg":"file_skipped","path":"docs/b.md"}
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docrank.log")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o644))
	return path
}

func TestParseLine(t *testing.T) {
	e := ParseLine(`{"time":"2026-01-02T10:00:01.5Z","level":"INFO","msg":"hello","n":2}`)

	assert.True(t, e.Valid)
	assert.Equal(t, "INFO", e.Level)
	assert.Equal(t, "hello", e.Msg)
	assert.Equal(t, 500*time.Millisecond, time.Duration(e.Time.Nanosecond()))
	assert.Equal(t, map[string]any{"n": float64(2)}, e.Attrs)

	bad := ParseLine("plain text")
	assert.False(t, bad.Valid)
	assert.Equal(t, "plain text", bad.Raw)
}

func TestViewer_Tail(t *testing.T) {
	path := writeSample(t)

	tests := []struct {
		name string
		cfg  ViewerConfig
		n    int
		want []string
	}{
		{name: "all", n: 10, want: []string{"processing", "index_complete", "", "file_skipped"}},
		{name: "last two", n: 2, want: []string{"", "file_skipped"}},
		{name: "level", cfg: ViewerConfig{Level: "info"}, n: 10, want: []string{"index_complete", "", "file_skipped"}},
		{name: "pattern", cfg: ViewerConfig{Pattern: regexp.MustCompile(`docs/`)}, n: 10, want: []string{"processing", "file_skipped"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := NewViewer(tt.cfg, &bytes.Buffer{}).Tail(path, tt.n)
			require.NoError(t, err)

			msgs := make([]string, len(entries))
			for i, e := range entries {
				msgs[i] = e.Msg
			}
			assert.Equal(t, tt.want, msgs)
		})
	}
}

func TestViewer_TailMissing(t *testing.T) {
	_, err := NewViewer(ViewerConfig{}, &bytes.Buffer{}).Tail(filepath.Join(t.TempDir(), "none"), 5)
	assert.Error(t, err)
}

func TestViewer_FormatAndPrint(t *testing.T) {
	var buf bytes.Buffer
	v := NewViewer(ViewerConfig{NoColor: true}, &buf)

	entries, err := v.Tail(writeSample(t), 10)
	require.NoError(t, err)
	v.Print(entries)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "10:00:00.000 DEBUG processing path=docs/a.md", lines[0])
	assert.Equal(t, "10:00:01.000 INFO  index_complete chunks=12", lines[1])
	assert.Equal(t, "not json", lines[2])
}

func TestViewer_Follow(t *testing.T) {
	path := writeSample(t)
	v := NewViewer(ViewerConfig{Level: "warn"}, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	entries := make(chan Entry, 4)
	done := make(chan error, 1)
	go func() { done <- v.Follow(ctx, path, entries) }()

	// Let Follow seek to the end before appending.
	time.Sleep(150 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(`{"time":"2026-01-02T10:00:03Z","level":"INFO","msg":"quiet"}` + "\n" +
		`{"time":"2026-01-02T10:00:04Z","level":"WARN","msg":"loud"}` + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	select {
	case e := <-entries:
		assert.Equal(t, "loud", e.Msg)
	case <-time.After(2 * time.Second):
		t.Fatal("no entry followed")
	}

	cancel()
	assert.NoError(t, <-done)
}

package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aman-CERP/docrank/internal/search"
)

func TestFormatResults(t *testing.T) {
	results := []search.Result{
		{Rank: 1, Score: 1.5, FilePath: "docs/a.md", Section: "# A", ContentPreview: "## Nested\nbody"},
	}

	got := FormatResults("body", results)

	assert.Contains(t, got, "## Results for \"body\"")
	assert.Contains(t, got, "Found 1 result\n")
	assert.Contains(t, got, "### 1. docs/a.md")
	assert.Contains(t, got, "**Section:** # A | **Score:** 1.50")
	assert.Contains(t, got, "> ## Nested\n> body")
}

func TestFormatResults_Empty(t *testing.T) {
	assert.Equal(t, `No results found for "zzz"`, FormatResults("zzz", nil))
}

func TestFormatStatus(t *testing.T) {
	assert.Contains(t, FormatStatus(IndexStatusOutput{Path: "x.csv"}), "Run 'docrank index' first")
	assert.Equal(t, "Index `x.db` (sqlite): 4 chunks from 2 files, modified 2026-01-01T00:00:00Z.",
		FormatStatus(IndexStatusOutput{Path: "x.db", Exists: true, Format: "sqlite", Chunks: 4, Files: 2, Modified: "2026-01-01T00:00:00Z"}))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 5, clampLimit(0, 5, 50))
	assert.Equal(t, 5, clampLimit(-3, 5, 50))
	assert.Equal(t, 7, clampLimit(7, 5, 50))
	assert.Equal(t, 50, clampLimit(500, 5, 50))
}

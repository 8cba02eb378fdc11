package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocrankError_Unwrap_PreservesOriginalError(t *testing.T) {
	// Given: an original error
	originalErr := errors.New("original error")

	// When: wrapping with DocrankError
	err := New(ErrCodeFileUnreadable, "cannot read docs/a.md", originalErr)

	// Then: unwrapping returns original error
	require.NotNil(t, err)
	assert.Equal(t, originalErr, errors.Unwrap(err))
	assert.True(t, errors.Is(err, originalErr))
}

func TestDocrankError_Error_ReturnsFormattedMessage(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		message  string
		expected string
	}{
		{
			name:     "config error",
			code:     ErrCodeConfigNotFound,
			message:  "config file not found",
			expected: "[ERR_101_CONFIG_NOT_FOUND] config file not found",
		},
		{
			name:     "missing index",
			code:     ErrCodeIndexNotFound,
			message:  "index not found",
			expected: "[ERR_207_INDEX_NOT_FOUND] index not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, nil)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestDocrankError_Is_MatchesByCodeThroughWrapping(t *testing.T) {
	// Given: a sentinel and a wrapped error with the same code
	sentinel := New(ErrCodeIndexNotFound, "index not found", nil)
	wrapped := fmt.Errorf("open session: %w", New(ErrCodeIndexNotFound, "data/bm25_index.csv", nil))

	// Then: errors.Is matches by code
	assert.True(t, errors.Is(wrapped, sentinel))
	assert.False(t, errors.Is(wrapped, New(ErrCodeCorruptIndex, "x", nil)))
}

func TestDocrankError_CategoryAndSeverityFromCode(t *testing.T) {
	tests := []struct {
		code         string
		wantCategory Category
		wantSeverity Severity
	}{
		{ErrCodeConfigInvalid, CategoryConfig, SeverityError},
		{ErrCodeFileUnreadable, CategoryIO, SeverityWarning},
		{ErrCodeCorruptIndex, CategoryIO, SeverityFatal},
		{ErrCodeIndexNotFound, CategoryIO, SeverityError},
		{ErrCodeInvalidQuery, CategoryValidation, SeverityError},
		{ErrCodeInternal, CategoryInternal, SeverityError},
		{"BAD", CategoryInternal, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "test message", nil)
			assert.Equal(t, tt.wantCategory, err.Category)
			assert.Equal(t, tt.wantSeverity, err.Severity)
		})
	}
}

func TestDocrankError_WithDetailAndSuggestion(t *testing.T) {
	err := New(ErrCodeIndexNotFound, "index not found", nil).
		WithDetail("path", "data/bm25_index.csv").
		WithSuggestion("Run 'docrank index' first")

	assert.Equal(t, "data/bm25_index.csv", err.Details["path"])
	assert.Equal(t, "Run 'docrank index' first", err.Suggestion)
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestHelpers_WorkOnWrappedChains(t *testing.T) {
	err := fmt.Errorf("load: %w", New(ErrCodeCorruptIndex, "bad row", nil))

	assert.Equal(t, ErrCodeCorruptIndex, GetCode(err))
	assert.Equal(t, CategoryIO, GetCategory(err))
	assert.True(t, IsFatal(err))

	plain := errors.New("plain")
	assert.Empty(t, GetCode(plain))
	assert.False(t, IsFatal(plain))
}

func TestFormatForCLI_IncludesHintAndCode(t *testing.T) {
	err := New(ErrCodeIndexNotFound, "Index not found", nil).
		WithSuggestion("Run 'docrank index' first")

	out := FormatForCLI(err)

	assert.Contains(t, out, "Error: Index not found")
	assert.Contains(t, out, "Hint: Run 'docrank index' first")
	assert.Contains(t, out, "Code: ERR_207_INDEX_NOT_FOUND")
}

func TestFormatForCLI_StandardErrorIsInternal(t *testing.T) {
	out := FormatForCLI(errors.New("boom"))

	assert.Contains(t, out, "Error: boom")
	assert.Contains(t, out, ErrCodeInternal)
	assert.Empty(t, FormatForCLI(nil))
}

func TestFormatJSON_RoundTripsFields(t *testing.T) {
	err := New(ErrCodeCorruptIndex, "row 3 has 2 fields", errors.New("wrong number of fields")).
		WithDetail("row", "3")

	data, jerr := FormatJSON(err)
	require.NoError(t, jerr)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, ErrCodeCorruptIndex, got["code"])
	assert.Equal(t, "FATAL", got["severity"])
	assert.Equal(t, "wrong number of fields", got["cause"])
}

func TestLogAttrs(t *testing.T) {
	assert.Nil(t, LogAttrs(nil))
	assert.Equal(t, []any{"error", "plain"}, LogAttrs(errors.New("plain")))

	attrs := LogAttrs(New(ErrCodeFileUnreadable, "cannot read", errors.New("permission denied")))
	assert.Contains(t, attrs, "error_code")
	assert.Contains(t, attrs, ErrCodeFileUnreadable)
	assert.Contains(t, attrs, "permission denied")
}

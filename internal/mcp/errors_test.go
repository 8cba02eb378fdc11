package mcp

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	drerrors "github.com/Aman-CERP/docrank/internal/errors"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "index not found",
			err:      drerrors.New(drerrors.ErrCodeIndexNotFound, "Index not found. Run 'docrank index' first.", nil).WithSuggestion("ignored"),
			wantCode: ErrCodeIndexNotFound,
			wantMsg:  "Index not found. Run 'docrank index' first.",
		},
		{
			name:     "corrupt index",
			err:      drerrors.New(drerrors.ErrCodeCorruptIndex, "row 3: bad id", nil).WithSuggestion("Rebuild it."),
			wantCode: ErrCodeIndexCorrupt,
			wantMsg:  "row 3: bad id Rebuild it.",
		},
		{
			name:     "validation",
			err:      drerrors.New(drerrors.ErrCodeInvalidQuery, "bad query", nil),
			wantCode: ErrCodeInvalidParams,
			wantMsg:  "bad query",
		},
		{
			name:     "wrapped coded error",
			err:      fmt.Errorf("outer: %w", drerrors.New(drerrors.ErrCodeIndexWrite, "disk full", nil)),
			wantCode: ErrCodeInternalError,
			wantMsg:  "disk full",
		},
		{name: "deadline", err: context.DeadlineExceeded, wantCode: ErrCodeTimeout, wantMsg: "Request timed out."},
		{name: "canceled", err: context.Canceled, wantCode: ErrCodeTimeout, wantMsg: "Request was canceled."},
		{name: "plain", err: errors.New("secret detail"), wantCode: ErrCodeInternalError, wantMsg: "Internal server error."},
		{name: "already mapped", err: NewInvalidParamsError("nope"), wantCode: ErrCodeInvalidParams, wantMsg: "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	assert.Nil(t, MapError(nil))
}

func TestMCPError_Error(t *testing.T) {
	assert.Equal(t, "MCP error -32602: bad", NewInvalidParamsError("bad").Error())
}

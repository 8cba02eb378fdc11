package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProject_ConfigLevelReplacesLoggingCleanup(t *testing.T) {
	// Given: a project config choosing a non-default log level, and logging
	// already set up by the root command
	newProject(t, map[string]string{".docrank.yaml": "log:\n  level: error\n"})
	debugMode = false

	previousCalled := false
	loggingCleanup = func() { previousCalled = true }
	t.Cleanup(func() { loggingCleanup = nil })

	c := &cobra.Command{}
	c.SetErr(&bytes.Buffer{})

	// When: loading the project
	p, err := loadProject(c, "")

	// Then: the earlier logger is released and the new cleanup is tracked
	require.NoError(t, err)
	assert.Equal(t, "error", p.cfg.Log.Level)
	assert.True(t, previousCalled)
	assert.NotNil(t, loggingCleanup)
}

func TestLoadProject_DefaultLevelKeepsLogging(t *testing.T) {
	newProject(t, nil)
	debugMode = false

	previousCalled := false
	loggingCleanup = func() { previousCalled = true }
	t.Cleanup(func() { loggingCleanup = nil })

	_, err := loadProject(&cobra.Command{}, "")

	require.NoError(t, err)
	assert.False(t, previousCalled)
}

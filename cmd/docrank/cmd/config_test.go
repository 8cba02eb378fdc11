package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/docrank/internal/config"
)

func TestConfigShow_Defaults(t *testing.T) {
	newProject(t, nil)

	stdout, _, err := run(t, "config", "show")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &cfg))
	assert.Equal(t, config.NewConfig().Search, cfg.Search)
	assert.Equal(t, config.NewConfig().Scan.Folders, cfg.Scan.Folders)
}

func TestConfigShow_JSONReflectsProjectConfig(t *testing.T) {
	root := newProject(t, map[string]string{
		".docrank.yaml": "search:\n  k1: 1.2\n",
	})
	require.FileExists(t, filepath.Join(root, ".docrank.yaml"))

	stdout, _, err := run(t, "config", "show", "--json")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(stdout), &cfg))
	assert.InDelta(t, 1.2, cfg.Search.K1, 1e-9)
	assert.InDelta(t, config.NewConfig().Search.B, cfg.Search.B, 1e-9)
}

func TestConfigInit_WritesProjectConfig(t *testing.T) {
	root := newProject(t, nil)

	stdout, _, err := run(t, "config", "init")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote ")
	assert.Contains(t, stdout, ".docrank.yaml")
	assert.FileExists(t, filepath.Join(root, ".docrank.yaml"))

	cfg, err := config.Load(root)
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig().Search, cfg.Search)
}

func TestConfigInit_RefusesOverwriteWithoutForce(t *testing.T) {
	root := newProject(t, map[string]string{".docrank.yaml": "search:\n  k1: 2\n"})

	_, _, err := run(t, "config", "init")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
	data, err := os.ReadFile(filepath.Join(root, ".docrank.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "search:\n  k1: 2\n", string(data))
}

func TestConfigInit_ForceThenRestore(t *testing.T) {
	// Given: a customised project config
	root := newProject(t, map[string]string{".docrank.yaml": "search:\n  k1: 2\n"})
	path := filepath.Join(root, ".docrank.yaml")

	// When: forcing defaults over it
	_, _, err := run(t, "config", "init", "--force")
	require.NoError(t, err)

	// Then: the old file was backed up
	backups, err := config.ListBackups(path)
	require.NoError(t, err)
	require.Len(t, backups, 1)

	// When: restoring
	stdout, _, err := run(t, "config", "restore")
	require.NoError(t, err)

	// Then: the customised content is back
	assert.Contains(t, stdout, "Restored")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "search:\n  k1: 2\n", string(data))
}

func TestConfigRestore_NoBackups(t *testing.T) {
	newProject(t, nil)

	_, _, err := run(t, "config", "restore")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no backups")
}

func TestConfigInit_User(t *testing.T) {
	newProject(t, nil)

	_, _, err := run(t, "config", "init", "--user")

	require.NoError(t, err)
	assert.FileExists(t, config.GetUserConfigPath())
}

// Package config loads docrank configuration from defaults, YAML files and
// DOCRANK_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	drerrors "github.com/Aman-CERP/docrank/internal/errors"
)

const (
	// AppName is used for the user config directory and env var prefix.
	AppName = "docrank"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "DOCRANK_"

	// DefaultIndexPath is the index location relative to the project root.
	DefaultIndexPath = "data/bm25_index.csv"
)

// ProjectConfigNames are the project config files, in lookup order.
var ProjectConfigNames = []string{".docrank.yaml", ".docrank.yml"}

// Config represents the complete docrank configuration.
type Config struct {
	Version int          `yaml:"version" json:"version"`
	Scan    ScanConfig   `yaml:"scan" json:"scan"`
	Index   IndexConfig  `yaml:"index" json:"index"`
	Search  SearchConfig `yaml:"search" json:"search"`
	Log     LogConfig    `yaml:"log" json:"log"`
}

// ScanConfig configures which documentation files an indexing run reads.
type ScanConfig struct {
	// Folders are walked recursively, relative to the project root, in order.
	Folders []string `yaml:"folders" json:"folders"`

	// RootFiles includes markdown files directly under the project root.
	RootFiles bool `yaml:"root_files" json:"root_files"`

	// Extensions selects files by suffix, case-insensitively.
	Extensions []string `yaml:"extensions" json:"extensions"`

	// SkipDirs excludes any directory whose name contains one of these.
	SkipDirs []string `yaml:"skip_dirs" json:"skip_dirs"`
}

// IndexConfig configures where and how the index is persisted.
type IndexConfig struct {
	// Path is the index file. Relative paths resolve against the project root.
	Path string `yaml:"path" json:"path"`

	// Format is csv, sqlite or auto (by extension).
	Format string `yaml:"format" json:"format"`
}

// SearchConfig configures BM25 scoring and result presentation.
type SearchConfig struct {
	// K1 controls term-frequency saturation (>= 0).
	K1 float64 `yaml:"k1" json:"k1"`

	// B controls document-length normalization (0.0-1.0).
	B float64 `yaml:"b" json:"b"`

	// MaxResults is the default number of results.
	MaxResults int `yaml:"max_results" json:"max_results"`

	// PreviewChars caps the content preview, in characters.
	PreviewChars int `yaml:"preview_chars" json:"preview_chars"`

	// CacheSize is the number of fitted indexes kept by long-running
	// processes. 0 disables caching.
	CacheSize int `yaml:"cache_size" json:"cache_size"`
}

// LogConfig configures file logging.
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Scan: ScanConfig{
			Folders: []string{
				"agent/rules",
				"agent/rules/project",
				"agent/rules/archive",
				"agent/workflows",
				"agent/skills",
				"agent/reference",
				"docs",
				"documentation",
			},
			RootFiles:  true,
			Extensions: []string{".md"},
			SkipDirs:   []string{"__pycache__", "node_modules", ".git"},
		},
		Index: IndexConfig{
			Path:   DefaultIndexPath,
			Format: "auto",
		},
		Search: SearchConfig{
			K1:           1.5,
			B:            0.75,
			MaxResults:   5,
			PreviewChars: 500,
			CacheSize:    8,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// GetUserConfigPath returns the path to the user configuration file.
// It follows the XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/docrank/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/docrank/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName, "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", AppName, "config.yaml")
	}
	return filepath.Join(home, ".config", AppName, "config.yaml")
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// ProjectConfigPath returns the project config file in dir, or "" if none exists.
func ProjectConfigPath(dir string) string {
	for _, name := range ProjectConfigNames {
		p := filepath.Join(dir, name)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// Load loads configuration for the project at dir.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User config (~/.config/docrank/config.yaml)
//  3. Project config (.docrank.yaml, then .docrank.yml)
//  4. Environment variables (DOCRANK_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if userPath := GetUserConfigPath(); fileExists(userPath) {
		if err := cfg.loadYAML(userPath); err != nil {
			return nil, err
		}
	}

	if projectPath := ProjectConfigPath(dir); projectPath != "" {
		if err := cfg.loadYAML(projectPath); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, drerrors.New(drerrors.ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %v", err), err).
			WithSuggestion("Check .docrank.yaml and DOCRANK_* environment variables")
	}

	return cfg, nil
}

// loadYAML overlays the keys present in the file at path onto c.
// Keys absent from the file keep their current values, so explicit zeros
// (k1: 0, b: 0, root_files: false) are honored. Unknown keys are rejected.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return drerrors.New(drerrors.ErrCodeConfigInvalid, fmt.Sprintf("failed to read config file %s", path), err).
			WithDetail("path", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return drerrors.New(drerrors.ErrCodeConfigInvalid, fmt.Sprintf("failed to parse config file %s: %v", path, err), err).
			WithDetail("path", path).
			WithSuggestion("Fix the YAML syntax or remove unknown keys")
	}
	return nil
}

// applyEnvOverrides applies DOCRANK_* environment variable overrides.
// Unparseable values are ignored; out-of-range values fail Validate.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvPrefix + "K1"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			c.Search.K1 = f
		}
	}
	if v := os.Getenv(EnvPrefix + "B"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			c.Search.B = f
		}
	}
	if v := os.Getenv(EnvPrefix + "MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.Search.MaxResults = n
		}
	}
	if v := os.Getenv(EnvPrefix + "INDEX_PATH"); v != "" {
		c.Index.Path = v
	}
	if v := os.Getenv(EnvPrefix + "INDEX_FORMAT"); v != "" {
		c.Index.Format = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// IndexPath returns the absolute index path for a project rooted at root.
func (c *Config) IndexPath(root string) string {
	p := c.Index.Path
	if p == "" {
		p = DefaultIndexPath
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, filepath.FromSlash(p))
}

// FindProjectRoot finds the project root directory.
// It walks up from startDir looking for a .git directory or a project config file.
// If none is found, the absolute startDir is returned.
func FindProjectRoot(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	if !dirExists(absDir) {
		return "", fmt.Errorf("directory does not exist: %s", absDir)
	}

	currentDir := absDir
	for {
		if dirExists(filepath.Join(currentDir, ".git")) {
			return currentDir, nil
		}
		if ProjectConfigPath(currentDir) != "" {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return absDir, nil
		}
		currentDir = parentDir
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if math.IsNaN(c.Search.K1) || math.IsInf(c.Search.K1, 0) {
		return fmt.Errorf("search.k1 must be a finite number, got %g", c.Search.K1)
	}
	if math.IsNaN(c.Search.B) || math.IsInf(c.Search.B, 0) {
		return fmt.Errorf("search.b must be a finite number, got %g", c.Search.B)
	}
	if c.Search.K1 < 0 {
		return fmt.Errorf("search.k1 must be non-negative, got %g", c.Search.K1)
	}
	if c.Search.B < 0 || c.Search.B > 1 {
		return fmt.Errorf("search.b must be between 0 and 1, got %g", c.Search.B)
	}
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be positive, got %d", c.Search.MaxResults)
	}
	if c.Search.PreviewChars <= 0 {
		return fmt.Errorf("search.preview_chars must be positive, got %d", c.Search.PreviewChars)
	}
	if c.Search.CacheSize < 0 {
		return fmt.Errorf("search.cache_size must be non-negative, got %d", c.Search.CacheSize)
	}

	validFormats := map[string]bool{"": true, "auto": true, "csv": true, "sqlite": true}
	if !validFormats[strings.ToLower(c.Index.Format)] {
		return fmt.Errorf("index.format must be 'csv', 'sqlite' or 'auto', got %s", c.Index.Format)
	}

	if len(c.Scan.Extensions) == 0 {
		return fmt.Errorf("scan.extensions must not be empty")
	}
	for _, ext := range c.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("scan.extensions entries must start with '.', got %q", ext)
		}
	}
	for _, folder := range c.Scan.Folders {
		if filepath.IsAbs(folder) || strings.HasPrefix(filepath.ToSlash(filepath.Clean(folder)), "../") {
			return fmt.Errorf("scan.folders entries must be inside the project, got %q", folder)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Log.Level)
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file, creating parent directories.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// fileExists checks if a regular file exists at the given path.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// dirExists checks if a directory exists at the given path.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

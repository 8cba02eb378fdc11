package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/docrank/internal/config"
	"github.com/Aman-CERP/docrank/internal/logging"
	"github.com/Aman-CERP/docrank/internal/scanner"
	"github.com/Aman-CERP/docrank/internal/search"
	"github.com/Aman-CERP/docrank/internal/store"
)

// project is a resolved project root with its effective configuration.
type project struct {
	root string
	cfg  *config.Config
}

// loadProject resolves the project root from dir ("" means the current
// directory, searching upward) and loads its configuration.
func loadProject(cmd *cobra.Command, dir string) (*project, error) {
	var root string
	if dir == "" {
		r, err := config.FindProjectRoot(".")
		if err != nil {
			return nil, err
		}
		root = r
	} else {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
		}
		root = abs
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	// The configured level applies to stderr unless --debug already chose.
	if !debugMode && cmd != nil && cfg.Log.Level != logging.DefaultConfig().Level {
		lc := logging.DefaultConfig()
		lc.Level = cfg.Log.Level
		lc.Stderr = cmd.ErrOrStderr()
		cleanup, err := logging.SetupDefault(lc)
		if err != nil {
			return nil, err
		}
		if loggingCleanup != nil {
			loggingCleanup()
		}
		loggingCleanup = cleanup
	}

	return &project{root: root, cfg: cfg}, nil
}

// indexPath returns override resolved against the working directory, or
// the configured path resolved against the project root.
func (p *project) indexPath(override string) (string, error) {
	if override == "" {
		return p.cfg.IndexPath(p.root), nil
	}
	abs, err := filepath.Abs(override)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", override, err)
	}
	return abs, nil
}

func (p *project) format(override string) (store.Format, error) {
	if override != "" {
		return store.ParseFormat(override)
	}
	return store.ParseFormat(p.cfg.Index.Format)
}

func (p *project) scanOptions() scanner.Options {
	return scanner.Options{
		RootDir:    p.root,
		Folders:    p.cfg.Scan.Folders,
		RootFiles:  p.cfg.Scan.RootFiles,
		Extensions: p.cfg.Scan.Extensions,
		SkipDirs:   p.cfg.Scan.SkipDirs,
	}
}

func (p *project) searchOptions(format store.Format) search.Options {
	return search.Options{
		K1:           p.cfg.Search.K1,
		B:            p.cfg.Search.B,
		PreviewChars: p.cfg.Search.PreviewChars,
		Format:       format,
	}
}

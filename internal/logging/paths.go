package logging

import (
	"fmt"
	"os"
	"path/filepath"
)

// LogDirEnv overrides the log directory.
const LogDirEnv = "DOCRANK_LOG_DIR"

// DefaultLogDir returns ~/.docrank/logs, or $DOCRANK_LOG_DIR when set.
// Falls back to the temp directory when there is no home directory.
func DefaultLogDir() string {
	if dir := os.Getenv(LogDirEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".docrank", "logs")
	}
	return filepath.Join(home, ".docrank", "logs")
}

// DefaultLogPath returns the log file path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "docrank.log")
}

// FindLogFile resolves the file to view: explicit when given, otherwise
// the default path.
func FindLogFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("log file not found: %s", explicit)
		}
		return explicit, nil
	}

	path := DefaultLogPath()
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("no log file at %s\nRun a command with --debug, or 'docrank serve', to create it", path)
	}
	return path, nil
}

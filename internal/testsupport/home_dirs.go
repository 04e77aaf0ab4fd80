package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// EnsureHomeDirs creates the default state and config directories under homeDir.
func EnsureHomeDirs(homeDir string) error {
	if err := os.MkdirAll(filepath.Join(homeDir, ".local", "state", "tasks"), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(homeDir, ".config", "tasks"), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return nil
}

// SetupTestHome creates a temp home directory, ensures the tasks dirs, and
// sets HOME. TASKS_* overrides from the caller's environment are cleared.
func SetupTestHome(t testing.TB) string {
	t.Helper()

	homeDir := t.TempDir()
	if err := EnsureHomeDirs(homeDir); err != nil {
		t.Fatalf("setup home dir: %v", err)
	}
	t.Setenv("HOME", homeDir)
	for _, name := range TaskEnvVars {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return homeDir
}

// TaskEnvVars lists the environment variables read by the config loader.
var TaskEnvVars = []string{
	"TASKS_STORAGE_BACKEND",
	"TASKS_STORAGE_PATH",
	"TASKS_LOCALE",
	"TASKS_FILTER",
	"TASKS_LOG_LEVEL",
}

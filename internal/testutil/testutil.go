// Package testutil provides shared test utilities for offlimits tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dgerlanc/offlimits/internal/config"
	"github.com/dgerlanc/offlimits/internal/constants"
)

// SetupTestConfig creates a temporary config directory with test
// configuration. Returns a cleanup function that should be deferred.
func SetupTestConfig(t *testing.T, configContent string) func() {
	t.Helper()

	tmpDir := t.TempDir()
	os.Setenv(constants.EnvConfigDir, tmpDir)

	if configContent != "" {
		configPath := filepath.Join(tmpDir, constants.ConfigFileName)
		if err := os.WriteFile(configPath, []byte(configContent), constants.FileMode); err != nil {
			t.Fatal(err)
		}
	}

	config.Reset()
	config.Init()

	return func() {
		os.Unsetenv(constants.EnvConfigDir)
		config.Reset()
	}
}

// SetupProjectRoot creates a temporary project root populated with the
// given files (relative path → content). Returns the root path.
func SetupProjectRoot(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), constants.DirMode); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), constants.FileMode); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// MinimalTestConfig is a minimal config for testing.
const MinimalTestConfig = `
[[protect]]
name = "env"
patterns = [".env*", "!.env.example"]

[[protect]]
name = "keys"
patterns = ["*.pem", "id_rsa*"]
`

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to name inside a fresh temporary directory and
// returns the full path. name may contain subdirectories.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	return WriteFileIn(t, t.TempDir(), name, content)
}

// WriteFileIn writes content to name inside dir and returns the full path.
func WriteFileIn(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

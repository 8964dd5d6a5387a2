package release

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "version.txt")
	if err := os.WriteFile(path, []byte("  1.4.2\n"), 0o644); err != nil {
		t.Fatalf("Failed to write release file: %v", err)
	}

	if got := Get(path); got != "1.4.2" {
		t.Errorf("Expected 1.4.2, got %q", got)
	}
	if got := Get(filepath.Join(dir, "missing.txt")); got != Unknown {
		t.Errorf("Expected %s, got %q", Unknown, got)
	}
}

func TestGetDefaultFile(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if got := Get(""); got != Unknown {
		t.Errorf("Expected %s without a release file, got %q", Unknown, got)
	}

	if err := os.WriteFile(DefaultFile, []byte("2.0.0"), 0o644); err != nil {
		t.Fatalf("Failed to write release file: %v", err)
	}
	if got := Get(""); got != "2.0.0" {
		t.Errorf("Expected 2.0.0, got %q", got)
	}
}

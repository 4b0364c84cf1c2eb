package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"langengine/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestRunAllSkipsStoreForMemoryBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.StateDir = t.TempDir()
	results := RunAll(&cfg)
	if len(results) != 1 {
		t.Fatalf("expected only the state dir check, got %d", len(results))
	}
	if len(Failed(results)) != 0 {
		t.Fatalf("unexpected failures: %#v", results)
	}
}

func TestRunAllChecksSeparateStoreDirectory(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.StateDir = t.TempDir()
	cfg.Store.Backend = config.BackendFile
	cfg.Store.Path = filepath.Join(t.TempDir(), "missing", "settings.toml")

	results := RunAll(&cfg)
	if len(results) != 2 {
		t.Fatalf("expected state and store checks, got %d", len(results))
	}
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "Store directory" {
		t.Fatalf("expected store directory failure, got %#v", failed)
	}
}

package project

import (
	"os"
	"path/filepath"
	"testing"

	"vetch/internal/diag"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[lint]
max_diagnostics = 7
disabled = ["VET5004", "VET5005"]
cache_dir = "/tmp/vetch-cache"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxDiagnostics() != 7 {
		t.Errorf("MaxDiagnostics = %d, want 7", cfg.MaxDiagnostics())
	}
	if cfg.CacheDir() != "/tmp/vetch-cache" {
		t.Errorf("CacheDir = %q", cfg.CacheDir())
	}
	if cfg.LintEnabled(diag.LintTrailingReturn) {
		t.Error("VET5004 should be disabled")
	}
	if cfg.LintEnabled(diag.LintUnnecessaryElse) {
		t.Error("VET5005 should be disabled")
	}
	if !cfg.LintEnabled(diag.LintMissingFields) {
		t.Error("VET5001 should stay enabled")
	}
}

func TestLoadDefaultsWhenUnset(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[lint]\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxDiagnostics() != Default().MaxDiagnostics() {
		t.Errorf("MaxDiagnostics = %d, want default", cfg.MaxDiagnostics())
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[lint]\nmax_diags = 5\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted an unknown key")
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[lint]\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, found, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !found {
		t.Fatal("manifest not found from nested directory")
	}
	if path != filepath.Join(root, ManifestName) {
		t.Errorf("path = %q", path)
	}
}

func TestFindMiss(t *testing.T) {
	// A bare temp dir has no manifest anywhere up to the filesystem root,
	// unless the host happens to carry one; tolerate that by checking the
	// found path is outside the temp dir.
	dir := t.TempDir()
	path, found, err := Find(dir)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found && filepath.Dir(path) == dir {
		t.Errorf("unexpected manifest at %q", path)
	}
}

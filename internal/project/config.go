// Package project loads the vetch.toml lint manifest.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"vetch/internal/diag"
)

// ManifestName is the file the loader searches for.
const ManifestName = "vetch.toml"

// Config is the [lint] section of vetch.toml.
type Config struct {
	Lint lintConfig `toml:"lint"`
}

type lintConfig struct {
	MaxDiagnostics int      `toml:"max_diagnostics"`
	Disabled       []string `toml:"disabled"`
	CacheDir       string   `toml:"cache_dir"`
}

// Default returns the configuration used when no manifest exists.
func Default() *Config {
	return &Config{Lint: lintConfig{MaxDiagnostics: 100}}
}

// Find walks up from startDir looking for a vetch.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses a manifest file, filling unset values with defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), path)
	}
	if cfg.Lint.MaxDiagnostics <= 0 {
		cfg.Lint.MaxDiagnostics = Default().Lint.MaxDiagnostics
	}
	return cfg, nil
}

// MaxDiagnostics returns the configured diagnostics cap.
func (c *Config) MaxDiagnostics() int {
	return c.Lint.MaxDiagnostics
}

// CacheDir returns the configured cache directory, empty for the default.
func (c *Config) CacheDir() string {
	return c.Lint.CacheDir
}

// LintEnabled reports whether a diagnostic code is enabled.
func (c *Config) LintEnabled(code diag.Code) bool {
	for _, name := range c.Lint.Disabled {
		if name == code.String() {
			return false
		}
	}
	return true
}

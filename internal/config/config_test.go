package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"langengine/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	chdir(t, t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "langengine", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "langengine")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Paths.Socket != filepath.Join(wantState, "langengine.sock") {
		t.Fatalf("unexpected socket path: %q", cfg.Paths.Socket)
	}
	if cfg.Language.Mode != config.ModePlaceholder {
		t.Fatalf("expected placeholder mode by default, got %q", cfg.Language.Mode)
	}
	if cfg.Language.Default != "en_US" {
		t.Fatalf("expected en_US default, got %q", cfg.Language.Default)
	}
	if cfg.Store.Backend != config.BackendMemory {
		t.Fatalf("expected memory backend, got %q", cfg.Store.Backend)
	}
	if cfg.Store.Path != "" {
		t.Fatalf("expected no store path for memory backend, got %q", cfg.Store.Path)
	}
	if cfg.Stateful() {
		t.Fatal("expected placeholder config to report stateless")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(cfg.Paths.StateDir); err != nil || !info.IsDir() {
		t.Fatalf("expected state dir to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "langengine.toml")

	type payload struct {
		Language struct {
			Default string `toml:"default"`
			Mode    string `toml:"mode"`
		} `toml:"language"`
		Store struct {
			Backend string `toml:"backend"`
		} `toml:"store"`
		Paths struct {
			StateDir string `toml:"state_dir"`
		} `toml:"paths"`
	}
	custom := payload{}
	custom.Language.Default = "fr_FR"
	custom.Language.Mode = "STATE"
	custom.Store.Backend = "sqlite"
	custom.Paths.StateDir = filepath.Join(tempDir, "state")

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected config to be read from %q, got %q (exists=%v)", configPath, resolved, exists)
	}
	if !cfg.Stateful() {
		t.Fatalf("expected mode to normalize to state, got %q", cfg.Language.Mode)
	}
	if cfg.Language.Default != "fr_FR" {
		t.Fatalf("unexpected default language: %q", cfg.Language.Default)
	}
	if want := filepath.Join(tempDir, "state", "langengine.db"); cfg.Store.Path != want {
		t.Fatalf("unexpected sqlite path: got %q want %q", cfg.Store.Path, want)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	chdir(t, t.TempDir())
	t.Setenv("LANGENGINE_LANGUAGE", "de_DE")
	t.Setenv("LANGENGINE_MODE", "state")
	t.Setenv("LANGENGINE_STORE_BACKEND", "file")
	t.Setenv("LANGENGINE_STORE_PATH", "~/prefs/user_settings.json")
	t.Setenv("LANGENGINE_LOG_LEVEL", "DEBUG")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Language.Default != "de_DE" {
		t.Fatalf("expected env language, got %q", cfg.Language.Default)
	}
	if !cfg.Stateful() {
		t.Fatal("expected env mode to select state")
	}
	if want := filepath.Join(tempHome, "prefs", "user_settings.json"); cfg.Store.Path != want {
		t.Fatalf("unexpected store path: got %q want %q", cfg.Store.Path, want)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercased log level, got %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "mode",
			mutate: func(c *config.Config) { c.Language.Mode = "cached" },
			want:   "language.mode",
		},
		{
			name: "default code",
			mutate: func(c *config.Config) {
				c.Language.ValidateCodes = true
				c.Language.Default = "not a code"
			},
			want: "language.default",
		},
		{
			name:   "backend",
			mutate: func(c *config.Config) { c.Store.Backend = "registry" },
			want:   "store.backend",
		},
		{
			name: "store path",
			mutate: func(c *config.Config) {
				c.Store.Backend = config.BackendFile
				c.Store.Path = ""
			},
			want: "store.path",
		},
		{
			name:   "webhook",
			mutate: func(c *config.Config) { c.Notifications.WebhookURL = "not-a-url" },
			want:   "notifications.webhook_url",
		},
		{
			name:   "log format",
			mutate: func(c *config.Config) { c.Logging.Format = "xml" },
			want:   "logging.format",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error to mention %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Language.Mode != config.ModePlaceholder {
		t.Fatalf("unexpected sample mode: %q", cfg.Language.Mode)
	}
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}

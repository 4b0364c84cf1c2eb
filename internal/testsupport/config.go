package testsupport

import (
	"path/filepath"
	"testing"

	"langengine/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It selects state mode with a memory store and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Language.Mode = config.ModeState
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.Socket = filepath.Join(base, "state", "langengine.sock")
	cfgVal.Logging.Format = "json"
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithFileStore selects the file backend at name inside the test directory.
// The extension picks the codec.
func WithFileStore(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Store.Backend = config.BackendFile
		b.cfg.Store.Path = filepath.Join(b.baseDir, "store", name)
	}
}

// WithSQLiteStore selects the sqlite backend inside the test directory.
func WithSQLiteStore() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Store.Backend = config.BackendSQLite
		b.cfg.Store.Path = filepath.Join(b.baseDir, "store", "langengine.db")
	}
}

// WithValidation toggles code validation.
func WithValidation(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Language.ValidateCodes = enabled
	}
}

// WithPlaceholderMode restores the fixed en_US accessor.
func WithPlaceholderMode() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Language.Mode = config.ModePlaceholder
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}

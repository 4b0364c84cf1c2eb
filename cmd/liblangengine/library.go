package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"langengine/internal/bridge"
	"langengine/internal/config"
	"langengine/internal/logging"
)

// ConfigEnv names the config file loaded when the library is first loaded.
const ConfigEnv = "LANGENGINE_CONFIG"

// internWarnThreshold is the table size at which a one-time warning is logged.
const internWarnThreshold = 1024

// loader configures a bridge from the file named by ConfigEnv.
type loader struct {
	bridge    *bridge.Bridge
	getenv    func(string) string
	newLogger func(*config.Config) *slog.Logger
}

// load returns the logger the library should use from then on. Any failure
// is logged and leaves the placeholder serving.
func (l loader) load(ctx context.Context) (*slog.Logger, error) {
	logger := l.newLogger(nil)
	path := strings.TrimSpace(l.getenv(ConfigEnv))
	if path == "" {
		return logger, nil
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		warnPlaceholder(logger, "config_load_failed", path, err)
		return logger, err
	}
	logger = l.newLogger(cfg)
	l.bridge.SetLogger(logger)

	if err := cfg.EnsureDirectories(); err != nil {
		warnPlaceholder(logger, "directories_unavailable", path, err)
		return logger, err
	}
	if err := l.bridge.Configure(ctx, cfg); err != nil {
		warnPlaceholder(logger, "configure_failed", path, err)
		return logger, err
	}
	logger.Info("language engine configured",
		logging.String(logging.FieldEventType, "library_configured"),
		logging.String("config", path),
		logging.Bool("stateful", l.bridge.Stateful()))
	return logger, nil
}

func warnPlaceholder(logger *slog.Logger, eventType, path string, err error) {
	logging.WarnWithContext(logger, "language engine unavailable; serving placeholder", eventType,
		logging.String("config", path),
		logging.Alert("placeholder_fallback"),
		logging.String(logging.FieldErrorHint, "check the file named by "+ConfigEnv),
		logging.Error(err))
}

// stderrLogger builds the library logger from cfg, or from defaults when cfg is nil.
func stderrLogger(cfg *config.Config) *slog.Logger {
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return logger
}

// internTable hands out one allocation per distinct string. Entries are never
// freed because the host may hold any returned pointer for the life of the
// process. With language.validate_codes on the table is bounded by the known
// locales. With it off, every distinct code set and then read stays resident,
// so a warning is logged once the table reaches internWarnThreshold.
type internTable[T any] struct {
	mu      sync.Mutex
	alloc   func(string) T
	entries map[string]T
	warned  bool
	logger  func() *slog.Logger
}

func newInternTable[T any](alloc func(string) T, logger func() *slog.Logger) *internTable[T] {
	return &internTable[T]{alloc: alloc, entries: map[string]T{}, logger: logger}
}

func (t *internTable[T]) get(s string) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p, ok := t.entries[s]; ok {
		return p
	}
	p := t.alloc(s)
	t.entries[s] = p
	if !t.warned && len(t.entries) >= internWarnThreshold {
		t.warned = true
		logging.WarnWithContext(t.logger(), "interned language strings keep growing", "intern_table_large",
			logging.Int("entries", len(t.entries)),
			logging.Alert("unbounded_codes"),
			logging.String(logging.FieldErrorHint, "enable language.validate_codes to bound stored codes"))
	}
	return p
}

func (t *internTable[T]) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// setLanguage applies code through b. A nil code is the host passing NULL.
func setLanguage(b *bridge.Bridge, code *string) int {
	return int(b.Set(code))
}

func engineAvailable(b *bridge.Bridge) int {
	if b.Stateful() {
		return 1
	}
	return 0
}

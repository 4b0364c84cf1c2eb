package store

import (
	"context"
	"fmt"

	"langengine/internal/config"
)

// LanguageKey is the settings key holding the current code.
const LanguageKey = "language"

// Store persists the current language code.
type Store interface {
	// Load returns the stored code. ok is false when nothing has been saved yet.
	Load(ctx context.Context) (code string, ok bool, err error)
	Save(ctx context.Context, code string) error
	Close() error
	// Describe returns a short human-readable location, e.g. "file:/path".
	Describe() string
}

// Open builds the store selected by cfg.Store.Backend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory, "":
		return NewMemory(), nil
	case config.BackendFile:
		return NewFile(cfg.Store.Path)
	case config.BackendSQLite:
		return OpenSQLite(ctx, cfg.Store.Path)
	default:
		return nil, fmt.Errorf("open store: unsupported backend %q", cfg.Store.Backend)
	}
}

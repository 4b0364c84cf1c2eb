package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"langengine/internal/config"
	"langengine/internal/engine"
	"langengine/internal/langaccess"
	"langengine/internal/logging"
)

// Bridge is the accessor behind the foreign-function boundary.
// The zero value serves the placeholder.
type Bridge struct {
	mu     sync.RWMutex
	acc    engine.Accessor
	local  *langaccess.Local
	logger *slog.Logger
}

// New returns a bridge serving the placeholder accessor.
func New() *Bridge {
	return &Bridge{}
}

func (b *Bridge) accessor() engine.Accessor {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.acc == nil {
		return engine.Placeholder{}
	}
	return b.acc
}

// Get returns the active language code.
func (b *Bridge) Get() string {
	return b.accessor().CurrentLanguage()
}

// Set applies code and returns the boundary status. A nil code is a null
// input: the placeholder accepts it and the engine rejects it.
func (b *Bridge) Set(code *string) engine.Status {
	acc := b.accessor()
	if code == nil {
		if _, stateful := acc.(*engine.Engine); stateful {
			return engine.StatusInvalidCode
		}
		return acc.SetCurrentLanguage("")
	}
	// Copy into Go-owned memory before it reaches the accessor.
	owned := string([]byte(*code))
	return acc.SetCurrentLanguage(owned)
}

// Stateful reports whether a stateful engine is active.
func (b *Bridge) Stateful() bool {
	_, ok := b.accessor().(*engine.Engine)
	return ok
}

// Configure swaps in the accessor selected by cfg and releases the previous
// one. Logging is discarded unless a logger was attached with SetLogger.
func (b *Bridge) Configure(ctx context.Context, cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("configure bridge: config is required")
	}
	b.mu.RLock()
	logger := b.logger
	b.mu.RUnlock()
	if logger == nil {
		logger = logging.NewNop()
	}

	local, err := langaccess.OpenLocal(ctx, cfg, logging.NewComponentLogger(logger, "bridge"))
	if err != nil {
		return fmt.Errorf("configure bridge: %w", err)
	}

	b.mu.Lock()
	prev := b.local
	b.acc = local.Accessor
	b.local = local
	b.mu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}
	return nil
}

// SetLogger attaches a logger used by the next Configure.
func (b *Bridge) SetLogger(logger *slog.Logger) {
	b.mu.Lock()
	b.logger = logger
	b.mu.Unlock()
}

// Close releases the store and reverts to the placeholder.
func (b *Bridge) Close() error {
	b.mu.Lock()
	local := b.local
	b.acc = nil
	b.local = nil
	b.mu.Unlock()
	return local.Close()
}

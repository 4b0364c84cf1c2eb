package langaccess

import (
	"context"
	"fmt"
	"log/slog"

	"langengine/internal/config"
	"langengine/internal/engine"
	"langengine/internal/notify"
	"langengine/internal/store"
)

// Local is an in-process accessor built from configuration.
type Local struct {
	Accessor engine.Accessor
	// Engine and Store are nil in placeholder mode.
	Engine *engine.Engine
	Store  store.Store
}

// Close releases the store, if any.
func (l *Local) Close() error {
	if l == nil || l.Store == nil {
		return nil
	}
	return l.Store.Close()
}

// Describe names the backing for status output.
func (l *Local) Describe() string {
	if l == nil || l.Store == nil {
		return "placeholder"
	}
	return l.Store.Describe()
}

// OpenLocal builds the accessor selected by language.mode.
func OpenLocal(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Local, error) {
	if !cfg.Stateful() {
		return &Local{Accessor: engine.Placeholder{}}, nil
	}
	eng, st, err := NewEngine(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &Local{Accessor: eng, Engine: eng, Store: st}, nil
}

// NewEngine opens the configured store and notifiers and returns an engine
// seeded from the store. The caller owns the returned store.
func NewEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*engine.Engine, store.Store, error) {
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	notifier, err := notify.NewFromConfig(cfg)
	if err != nil {
		_ = st.Close()
		return nil, nil, fmt.Errorf("configure notifications: %w", err)
	}
	eng := engine.New(engine.Options{
		Store:        st,
		Notifier:     notifier,
		Logger:       logger,
		Default:      cfg.Language.Default,
		Validate:     cfg.Language.ValidateCodes,
		DetectSystem: cfg.Language.DetectSystem,
	})
	if err := eng.Load(ctx); err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	return eng, st, nil
}

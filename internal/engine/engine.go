package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"langengine/internal/language"
	"langengine/internal/logging"
	"langengine/internal/store"
)

var (
	// ErrInvalidCode reports a code rejected by validation.
	ErrInvalidCode = language.ErrInvalidCode
	// ErrPersist reports that the store could not save the new code.
	ErrPersist = errors.New("persist language")
)

// Store persists the current code. ok is false when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context) (code string, ok bool, err error)
	Save(ctx context.Context, code string) error
}

// Notifier is told about every change of the current code.
type Notifier interface {
	LanguageChanged(ctx context.Context, event ChangeEvent) error
}

// ChangeEvent describes one transition of the current code.
type ChangeEvent struct {
	ID       string    `json:"id"`
	Previous string    `json:"previous"`
	Current  string    `json:"current"`
	Source   string    `json:"source"`
	At       time.Time `json:"at"`
	Changed  bool      `json:"changed"`
}

// Event sources.
const (
	SourceSet    = "set"
	SourceReload = "reload"
)

// Options configures an Engine.
type Options struct {
	Store    Store
	Notifier Notifier
	Logger   *slog.Logger

	// Default is used when the store is empty. Empty falls back to the system
	// locale and then language.Fallback.
	Default string
	// Validate rejects codes that do not parse as a language tag and stores
	// the canonical spelling of those that do.
	Validate bool
	// DetectSystem prefers the system locale over Default.
	DetectSystem bool

	LookupEnv func(string) (string, bool)
	Now       func() time.Time
}

// Engine is the stateful accessor. It is safe for concurrent use.
type Engine struct {
	store    Store
	notifier Notifier
	logger   *slog.Logger
	validate bool
	now      func() time.Time

	mu      sync.RWMutex
	current string
}

// New builds an engine seeded with the initial code. Call Load to pick up a
// previously persisted value.
func New(opts Options) *Engine {
	if opts.Store == nil {
		opts.Store = store.NewMemory()
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		store:    opts.Store,
		notifier: opts.Notifier,
		logger:   logging.NewComponentLogger(opts.Logger, "engine"),
		validate: opts.Validate,
		now:      opts.Now,
		current:  initialCode(opts),
	}
}

func initialCode(opts Options) string {
	if opts.DetectSystem {
		if code, ok := language.FromEnvironment(opts.LookupEnv); ok {
			return code.String()
		}
	}
	if def := strings.TrimSpace(opts.Default); def != "" {
		if opts.Validate {
			if code, err := language.Parse(def); err == nil {
				return code.String()
			}
		} else {
			return def
		}
	}
	if code, ok := language.FromEnvironment(opts.LookupEnv); ok {
		return code.String()
	}
	return language.Fallback.String()
}

// Load replaces the seeded code with the persisted one, if any.
func (e *Engine) Load(ctx context.Context) error {
	stored, ok, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load language: %w", err)
	}
	if !ok {
		e.logger.Debug("no persisted language, using initial value",
			logging.String(logging.FieldLanguage, e.CurrentLanguage()))
		return nil
	}
	code, err := e.accept(stored)
	if err != nil {
		logging.WarnWithContext(e.logger, "ignoring invalid persisted language", "persisted_language_invalid",
			logging.String(logging.FieldLanguage, stored),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "set a valid code to overwrite the stored value"))
		return nil
	}
	e.mu.Lock()
	e.current = code
	e.mu.Unlock()
	e.logger.Debug("loaded persisted language", logging.String(logging.FieldLanguage, code))
	return nil
}

// CurrentLanguage returns the active code.
func (e *Engine) CurrentLanguage() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Set makes raw the active code. The value is copied, validated when enabled,
// and persisted before it becomes visible to readers. A store failure leaves
// the previous code active and returns an error wrapping ErrPersist.
func (e *Engine) Set(ctx context.Context, raw string) (ChangeEvent, error) {
	code, err := e.accept(raw)
	if err != nil {
		return ChangeEvent{}, err
	}

	event := ChangeEvent{ID: newEventID(ctx), Current: code, Source: SourceSet, At: e.now().UTC()}
	logger := e.logger.With(logging.String(logging.FieldCorrelationID, event.ID))

	e.mu.Lock()
	event.Previous = e.current
	if event.Previous == code {
		e.mu.Unlock()
		logger.Debug("language unchanged", logging.String(logging.FieldLanguage, code))
		return event, nil
	}
	if err := e.store.Save(ctx, code); err != nil {
		e.mu.Unlock()
		logger.Error("language change not persisted",
			logging.String(logging.FieldLanguage, code),
			logging.Error(err),
			logging.String(logging.FieldEventType, "language_persist_failed"),
			logging.String(logging.FieldErrorHint, "check the store path permissions and free space"))
		return ChangeEvent{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	e.current = code
	e.mu.Unlock()

	event.Changed = true
	logger.Info("language changed",
		logging.String("previous", event.Previous),
		logging.String(logging.FieldLanguage, code),
		logging.String(logging.FieldEventType, "language_changed"))
	e.notify(ctx, logger, event)
	return event, nil
}

// SetCurrentLanguage implements Accessor by mapping Set's errors onto Status codes.
func (e *Engine) SetCurrentLanguage(code string) Status {
	_, err := e.Set(context.Background(), code)
	return StatusFor(err)
}

// StatusFor maps an error returned by Set onto a boundary status.
func StatusFor(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrInvalidCode):
		return StatusInvalidCode
	default:
		return StatusPersistFailed
	}
}

// Reload re-reads the store and adopts its value when it differs from the
// active code. It is used when another process edits the store.
func (e *Engine) Reload(ctx context.Context) (ChangeEvent, error) {
	stored, ok, err := e.store.Load(ctx)
	if err != nil {
		return ChangeEvent{}, fmt.Errorf("reload language: %w", err)
	}
	if !ok {
		return ChangeEvent{}, nil
	}
	code, err := e.accept(stored)
	if err != nil {
		return ChangeEvent{}, err
	}

	event := ChangeEvent{ID: newEventID(ctx), Current: code, Source: SourceReload, At: e.now().UTC()}
	e.mu.Lock()
	event.Previous = e.current
	if event.Previous == code {
		e.mu.Unlock()
		return event, nil
	}
	e.current = code
	e.mu.Unlock()

	event.Changed = true
	logger := e.logger.With(logging.String(logging.FieldCorrelationID, event.ID))
	logger.Info("language reloaded from store",
		logging.String("previous", event.Previous),
		logging.String(logging.FieldLanguage, code),
		logging.String(logging.FieldEventType, "language_reloaded"))
	e.notify(ctx, logger, event)
	return event, nil
}

func (e *Engine) accept(raw string) (string, error) {
	if !e.validate {
		return strings.Clone(raw), nil
	}
	code, err := language.Parse(raw)
	if err != nil {
		return "", err
	}
	return code.String(), nil
}

func (e *Engine) notify(ctx context.Context, logger *slog.Logger, event ChangeEvent) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.LanguageChanged(ctx, event); err != nil {
		logging.WarnWithContext(logger, "language change notification failed", "language_notify_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "verify notifications.ntfy_topic and notifications.webhook_url"))
	}
}

func newEventID(ctx context.Context) string {
	if id, ok := logging.CorrelationIDFromContext(ctx); ok {
		return id
	}
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

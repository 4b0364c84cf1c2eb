package engine_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"langengine/internal/engine"
	"langengine/internal/logging"
	"langengine/internal/store"
)

func noEnv(string) (string, bool) { return "", false }

func envFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

type failingStore struct {
	store.Memory
	err error
}

func (f *failingStore) Save(context.Context, string) error { return f.err }

type recordingNotifier struct {
	mu     sync.Mutex
	events []engine.ChangeEvent
	err    error
}

func (r *recordingNotifier) LanguageChanged(_ context.Context, event engine.ChangeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingNotifier) Events() []engine.ChangeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]engine.ChangeEvent(nil), r.events...)
}

func TestPlaceholderIgnoresSetter(t *testing.T) {
	var acc engine.Accessor = engine.Placeholder{}

	if got := acc.CurrentLanguage(); got != "en_US" {
		t.Fatalf("CurrentLanguage() = %q, want en_US", got)
	}
	for _, code := range []string{"fr_FR", "", "not a language", strings.Repeat("x", 4096)} {
		if status := acc.SetCurrentLanguage(code); status != engine.StatusOK {
			t.Fatalf("SetCurrentLanguage(%q) = %v, want ok", code, status)
		}
		if got := acc.CurrentLanguage(); got != "en_US" {
			t.Fatalf("after SetCurrentLanguage(%q), CurrentLanguage() = %q", code, got)
		}
	}
}

func TestPlaceholderConcurrentUse(t *testing.T) {
	acc := engine.Placeholder{}
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = acc.SetCurrentLanguage("de_DE")
			if got := acc.CurrentLanguage(); got != engine.PlaceholderLanguage {
				t.Errorf("CurrentLanguage() = %q", got)
			}
		}()
	}
	wg.Wait()
}

func TestStatusString(t *testing.T) {
	tests := map[engine.Status]string{
		engine.StatusOK:            "ok",
		engine.StatusInvalidCode:   "invalid_code",
		engine.StatusPersistFailed: "persist_failed",
		engine.Status(9):           "status(9)",
	}
	for status, want := range tests {
		if got := status.String(); got != want {
			t.Fatalf("Status(%d).String() = %q, want %q", int(status), got, want)
		}
	}
}

func TestInitialCodePrecedence(t *testing.T) {
	tests := []struct {
		name string
		opts engine.Options
		want string
	}{
		{
			name: "fallback",
			opts: engine.Options{LookupEnv: noEnv},
			want: "en_US",
		},
		{
			name: "default",
			opts: engine.Options{Default: "fr_CA", LookupEnv: envFrom(map[string]string{"LANG": "de_DE.UTF-8"})},
			want: "fr_CA",
		},
		{
			name: "system when default empty",
			opts: engine.Options{LookupEnv: envFrom(map[string]string{"LANG": "de_DE.UTF-8"})},
			want: "de_DE",
		},
		{
			name: "detect system wins",
			opts: engine.Options{Default: "fr_CA", DetectSystem: true, LookupEnv: envFrom(map[string]string{"LC_ALL": "ja_JP.UTF-8", "LANG": "de_DE"})},
			want: "ja_JP",
		},
		{
			name: "invalid default validated",
			opts: engine.Options{Default: "!!", Validate: true, LookupEnv: noEnv},
			want: "en_US",
		},
		{
			name: "posix locale ignored",
			opts: engine.Options{LookupEnv: envFrom(map[string]string{"LANG": "C.UTF-8"})},
			want: "en_US",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := engine.New(tt.opts)
			if got := e.CurrentLanguage(); got != tt.want {
				t.Fatalf("CurrentLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetThenGet(t *testing.T) {
	notifier := &recordingNotifier{}
	e := engine.New(engine.Options{LookupEnv: noEnv, Notifier: notifier})

	if status := e.SetCurrentLanguage("fr_FR"); status != engine.StatusOK {
		t.Fatalf("SetCurrentLanguage = %v", status)
	}
	if got := e.CurrentLanguage(); got != "fr_FR" {
		t.Fatalf("CurrentLanguage() = %q, want fr_FR", got)
	}

	events := notifier.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(events))
	}
	ev := events[0]
	if ev.Previous != "en_US" || ev.Current != "fr_FR" || !ev.Changed || ev.Source != engine.SourceSet {
		t.Fatalf("unexpected event %+v", ev)
	}
	if ev.ID == "" {
		t.Fatal("expected event id")
	}
}

func TestSetWithoutValidationKeepsValueVerbatim(t *testing.T) {
	e := engine.New(engine.Options{LookupEnv: noEnv})
	for _, raw := range []string{"", "klingon", "fr-fr.UTF-8"} {
		if _, err := e.Set(context.Background(), raw); err != nil {
			t.Fatalf("Set(%q): %v", raw, err)
		}
		if got := e.CurrentLanguage(); got != raw {
			t.Fatalf("CurrentLanguage() = %q, want %q", got, raw)
		}
	}
}

func TestSetValidates(t *testing.T) {
	e := engine.New(engine.Options{LookupEnv: noEnv, Validate: true})

	if _, err := e.Set(context.Background(), "de-de"); err != nil {
		t.Fatalf("Set(de-de): %v", err)
	}
	if got := e.CurrentLanguage(); got != "de_DE" {
		t.Fatalf("CurrentLanguage() = %q, want de_DE", got)
	}

	_, err := e.Set(context.Background(), "not a language")
	if !errors.Is(err, engine.ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
	if status := e.SetCurrentLanguage(""); status != engine.StatusInvalidCode {
		t.Fatalf("SetCurrentLanguage(\"\") = %v, want invalid_code", status)
	}
	if got := e.CurrentLanguage(); got != "de_DE" {
		t.Fatalf("rejected code changed state: %q", got)
	}
}

func TestSetPersistFailureKeepsPrevious(t *testing.T) {
	notifier := &recordingNotifier{}
	e := engine.New(engine.Options{
		LookupEnv: noEnv,
		Store:     &failingStore{err: errors.New("disk full")},
		Notifier:  notifier,
	})

	_, err := e.Set(context.Background(), "es_ES")
	if !errors.Is(err, engine.ErrPersist) {
		t.Fatalf("expected ErrPersist, got %v", err)
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected store error in chain, got %v", err)
	}
	if got := e.CurrentLanguage(); got != "en_US" {
		t.Fatalf("CurrentLanguage() = %q after failed save", got)
	}
	if status := e.SetCurrentLanguage("es_ES"); status != engine.StatusPersistFailed {
		t.Fatalf("SetCurrentLanguage = %v, want persist_failed", status)
	}
	if n := len(notifier.Events()); n != 0 {
		t.Fatalf("expected no notifications, got %d", n)
	}
}

func TestSetSameValueIsNoop(t *testing.T) {
	notifier := &recordingNotifier{}
	e := engine.New(engine.Options{LookupEnv: noEnv, Notifier: notifier})

	event, err := e.Set(context.Background(), "en_US")
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if event.Changed {
		t.Fatalf("expected unchanged event, got %+v", event)
	}
	if n := len(notifier.Events()); n != 0 {
		t.Fatalf("expected no notifications, got %d", n)
	}
}

func TestNotifierFailureDoesNotFailSet(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("unreachable")}
	e := engine.New(engine.Options{LookupEnv: noEnv, Notifier: notifier})

	if _, err := e.Set(context.Background(), "it_IT"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := e.CurrentLanguage(); got != "it_IT" {
		t.Fatalf("CurrentLanguage() = %q", got)
	}
}

func TestEventIDFollowsCorrelationID(t *testing.T) {
	e := engine.New(engine.Options{LookupEnv: noEnv})
	ctx := logging.WithCorrelationID(context.Background(), "req-42")
	event, err := e.Set(ctx, "pt_BR")
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if event.ID != "req-42" {
		t.Fatalf("event id = %q, want req-42", event.ID)
	}
}

func TestEventTimestampUsesClock(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	e := engine.New(engine.Options{LookupEnv: noEnv, Now: func() time.Time { return fixed }})
	event, err := e.Set(context.Background(), "nl_NL")
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !event.At.Equal(fixed) || event.At.Location() != time.UTC {
		t.Fatalf("event time = %v, want %v in UTC", event.At, fixed)
	}
}

func TestLoadAdoptsPersistedValue(t *testing.T) {
	s := store.NewMemory()
	if err := s.Save(context.Background(), "ko_KR"); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	e := engine.New(engine.Options{LookupEnv: noEnv, Store: s, Default: "fr_FR"})
	if got := e.CurrentLanguage(); got != "fr_FR" {
		t.Fatalf("before Load: %q", got)
	}
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := e.CurrentLanguage(); got != "ko_KR" {
		t.Fatalf("after Load: %q, want ko_KR", got)
	}
}

func TestLoadIgnoresInvalidPersistedValue(t *testing.T) {
	s := store.NewMemory()
	_ = s.Save(context.Background(), "???")
	e := engine.New(engine.Options{LookupEnv: noEnv, Store: s, Validate: true})
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := e.CurrentLanguage(); got != "en_US" {
		t.Fatalf("CurrentLanguage() = %q, want en_US", got)
	}
}

func TestSetPersistsToStore(t *testing.T) {
	s := store.NewMemory()
	e := engine.New(engine.Options{LookupEnv: noEnv, Store: s})
	if _, err := e.Set(context.Background(), "sv_SE"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := s.Load(context.Background())
	if err != nil || !ok || got != "sv_SE" {
		t.Fatalf("store Load = %q %v %v", got, ok, err)
	}
}

func TestReload(t *testing.T) {
	s := store.NewMemory()
	notifier := &recordingNotifier{}
	e := engine.New(engine.Options{LookupEnv: noEnv, Store: s, Notifier: notifier})

	event, err := e.Reload(context.Background())
	if err != nil || event.Changed {
		t.Fatalf("Reload on empty store = %+v, %v", event, err)
	}

	_ = s.Save(context.Background(), "pl_PL")
	event, err = e.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if !event.Changed || event.Source != engine.SourceReload || event.Previous != "en_US" {
		t.Fatalf("unexpected event %+v", event)
	}
	if got := e.CurrentLanguage(); got != "pl_PL" {
		t.Fatalf("CurrentLanguage() = %q", got)
	}

	event, err = e.Reload(context.Background())
	if err != nil || event.Changed {
		t.Fatalf("second Reload = %+v, %v", event, err)
	}
	if n := len(notifier.Events()); n != 1 {
		t.Fatalf("expected 1 notification, got %d", n)
	}
}

func TestConcurrentSetAndGet(t *testing.T) {
	e := engine.New(engine.Options{LookupEnv: noEnv, Validate: true})
	codes := []string{"en_US", "fr_FR", "de_DE", "es_ES"}
	valid := map[string]bool{}
	for _, c := range codes {
		valid[c] = true
	}

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if status := e.SetCurrentLanguage(codes[i%len(codes)]); status != engine.StatusOK {
				t.Errorf("SetCurrentLanguage = %v", status)
			}
		}(i)
		go func() {
			defer wg.Done()
			if got := e.CurrentLanguage(); !valid[got] {
				t.Errorf("observed torn value %q", got)
			}
		}()
	}
	wg.Wait()
}

func TestStatusFor(t *testing.T) {
	if engine.StatusFor(nil) != engine.StatusOK {
		t.Fatal("nil should map to ok")
	}
	if engine.StatusFor(engine.ErrInvalidCode) != engine.StatusInvalidCode {
		t.Fatal("ErrInvalidCode should map to invalid_code")
	}
	if engine.StatusFor(errors.New("boom")) != engine.StatusPersistFailed {
		t.Fatal("other errors should map to persist_failed")
	}
}

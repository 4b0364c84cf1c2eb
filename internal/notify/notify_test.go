package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"langengine/internal/config"
	"langengine/internal/engine"
	"langengine/internal/notify"
)

func sampleEvent() engine.ChangeEvent {
	return engine.ChangeEvent{
		ID:       "0190d7a4-2f6e-7c3a-9d2b-5a1e0f3b7c11",
		Previous: "en_US",
		Current:  "fr_FR",
		Source:   engine.SourceSet,
		At:       time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Changed:  true,
	}
}

func TestNewFromConfigReturnsNoopWhenUnconfigured(t *testing.T) {
	cfg := config.Default()
	n, err := notify.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if _, ok := n.(notify.Noop); !ok {
		t.Fatalf("expected Noop, got %T", n)
	}
	if err := n.LanguageChanged(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("noop returned %v", err)
	}
}

func TestNewFromConfigCombinesTransports(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = "https://ntfy.example.com/langengine"
	cfg.Notifications.WebhookURL = "https://hooks.example.com/language"
	n, err := notify.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	multi, ok := n.(notify.Multi)
	if !ok || len(multi) != 2 {
		t.Fatalf("expected Multi with 2 notifiers, got %T %v", n, n)
	}

	cfg.Notifications.NtfyTopic = ""
	cfg.Notifications.WebhookURL = "not a url"
	if _, err := notify.NewFromConfig(&cfg); err == nil {
		t.Fatal("expected error for invalid webhook url")
	}
}

func TestNtfyFormatsMessage(t *testing.T) {
	var (
		gotTitle, gotTags, gotBody string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		gotTitle = r.Header.Get("Title")
		gotTags = r.Header.Get("Tags")
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := notify.NewNtfy(srv.URL, time.Second)
	if err := n.LanguageChanged(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("LanguageChanged: %v", err)
	}
	if gotTitle != "Language Engine - Language Changed" {
		t.Fatalf("unexpected title %q", gotTitle)
	}
	if gotTags != "langengine,language,set" {
		t.Fatalf("unexpected tags %q", gotTags)
	}
	if !strings.Contains(gotBody, "[fr_FR]") || !strings.Contains(gotBody, "[en_US]") {
		t.Fatalf("unexpected message %q", gotBody)
	}
}

func TestNtfyReportsHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	err := notify.NewNtfy(srv.URL, time.Second).LanguageChanged(context.Background(), sampleEvent())
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected 403 error, got %v", err)
	}
}

func TestWebhookSendsCloudEvent(t *testing.T) {
	var (
		mu      sync.Mutex
		headers http.Header
		body    []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		headers = r.Header.Clone()
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	n, err := notify.NewWebhook(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("NewWebhook: %v", err)
	}
	if err := n.LanguageChanged(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("LanguageChanged: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if got := headers.Get("Ce-Type"); got != notify.EventTypeLanguageChanged {
		t.Fatalf("ce-type = %q", got)
	}
	if got := headers.Get("Ce-Source"); got != notify.EventSource {
		t.Fatalf("ce-source = %q", got)
	}
	if got := headers.Get("Ce-Id"); got != sampleEvent().ID {
		t.Fatalf("ce-id = %q", got)
	}
	var data engine.ChangeEvent
	if err := json.Unmarshal(body, &data); err != nil {
		t.Fatalf("decode body %q: %v", body, err)
	}
	if data.Current != "fr_FR" || data.Previous != "en_US" {
		t.Fatalf("unexpected data %+v", data)
	}
}

func TestWebhookReportsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n, err := notify.NewWebhook(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("NewWebhook: %v", err)
	}
	if err := n.LanguageChanged(context.Background(), sampleEvent()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

type stubNotifier struct {
	calls int
	err   error
}

func (s *stubNotifier) LanguageChanged(context.Context, engine.ChangeEvent) error {
	s.calls++
	return s.err
}

func TestMultiJoinsErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	a := &stubNotifier{err: errA}
	ok := &stubNotifier{}
	b := &stubNotifier{err: errB}

	err := notify.Multi{a, nil, ok, b}.LanguageChanged(context.Background(), sampleEvent())
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected joined errors, got %v", err)
	}
	if a.calls != 1 || ok.calls != 1 || b.calls != 1 {
		t.Fatalf("expected every notifier called once: %d %d %d", a.calls, ok.calls, b.calls)
	}
}

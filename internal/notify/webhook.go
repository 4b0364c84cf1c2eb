package notify

import (
	"context"
	"fmt"
	"net/url"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"

	"langengine/internal/engine"
)

// CloudEvents attributes for change events.
const (
	EventTypeLanguageChanged = "io.langengine.language.changed"
	EventSource              = "langengine"
)

// Webhook posts change events as binary-mode CloudEvents over HTTP.
type Webhook struct {
	target  string
	timeout time.Duration
	client  cloudevents.Client
}

// NewWebhook returns a notifier delivering to target.
func NewWebhook(target string, timeout time.Duration) (*Webhook, error) {
	parsed, err := url.Parse(target)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("webhook notifier: invalid target %q", target)
	}
	client, err := cloudevents.NewClientHTTP()
	if err != nil {
		return nil, fmt.Errorf("webhook notifier: create client: %w", err)
	}
	return &Webhook{target: target, timeout: timeout, client: client}, nil
}

func (w *Webhook) LanguageChanged(ctx context.Context, event engine.ChangeEvent) error {
	ce := cloudevents.NewEvent()
	ce.SetID(event.ID)
	ce.SetSource(EventSource)
	ce.SetType(EventTypeLanguageChanged)
	ce.SetSubject(event.Current)
	ce.SetTime(event.At)
	if err := ce.SetData(cloudevents.ApplicationJSON, event); err != nil {
		return fmt.Errorf("encode webhook event: %w", err)
	}

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	ctx = cloudevents.ContextWithTarget(ctx, w.target)

	if result := w.client.Send(ctx, ce); !cloudevents.IsACK(result) {
		return fmt.Errorf("send webhook event: %w", result)
	}
	return nil
}

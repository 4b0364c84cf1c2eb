package notify

import (
	"context"
	"errors"
	"strings"
	"time"

	"langengine/internal/config"
	"langengine/internal/engine"
)

const userAgent = "langengine/0.1.0"

// Notifier is told about every change of the current language.
type Notifier interface {
	LanguageChanged(ctx context.Context, event engine.ChangeEvent) error
}

// NewFromConfig builds the notifiers enabled in cfg. With nothing configured
// it returns a no-op notifier.
func NewFromConfig(cfg *config.Config) (Notifier, error) {
	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	var notifiers Multi
	if topic := strings.TrimSpace(cfg.Notifications.NtfyTopic); topic != "" {
		notifiers = append(notifiers, NewNtfy(topic, timeout))
	}
	if target := strings.TrimSpace(cfg.Notifications.WebhookURL); target != "" {
		webhook, err := NewWebhook(target, timeout)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, webhook)
	}

	switch len(notifiers) {
	case 0:
		return Noop{}, nil
	case 1:
		return notifiers[0], nil
	default:
		return notifiers, nil
	}
}

// Noop discards events.
type Noop struct{}

func (Noop) LanguageChanged(context.Context, engine.ChangeEvent) error { return nil }

// Multi delivers each event to every notifier and joins their failures.
type Multi []Notifier

func (m Multi) LanguageChanged(ctx context.Context, event engine.ChangeEvent) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.LanguageChanged(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

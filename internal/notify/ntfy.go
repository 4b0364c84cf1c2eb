package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"langengine/internal/engine"
	"langengine/internal/language"
)

// Ntfy publishes change messages to an ntfy topic URL.
type Ntfy struct {
	endpoint string
	client   *http.Client
}

// NewNtfy returns an ntfy notifier posting to endpoint.
func NewNtfy(endpoint string, timeout time.Duration) *Ntfy {
	return &Ntfy{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

func (n *Ntfy) LanguageChanged(ctx context.Context, event engine.ChangeEvent) error {
	message := fmt.Sprintf("Language changed to %s", describe(event.Current))
	if prev := strings.TrimSpace(event.Previous); prev != "" {
		message = fmt.Sprintf("%s (was %s)", message, describe(prev))
	}
	tags := []string{"langengine", "language", event.Source}
	return n.send(ctx, payload{
		title:   "Language Engine - Language Changed",
		message: message,
		tags:    tags,
	})
}

func describe(code string) string {
	if name := language.Describe(code); name != "" && name != code {
		return fmt.Sprintf("%s [%s]", name, code)
	}
	return code
}

func (n *Ntfy) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

package config

import (
	"errors"
	"fmt"
	"net/url"

	"langengine/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLanguage(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLanguage() error {
	switch c.Language.Mode {
	case ModePlaceholder, ModeState:
	default:
		return fmt.Errorf("language.mode: unsupported value %q (expected %q or %q)", c.Language.Mode, ModePlaceholder, ModeState)
	}
	if c.Language.ValidateCodes && c.Language.Default != "" {
		if _, err := language.Parse(c.Language.Default); err != nil {
			return fmt.Errorf("language.default: %w", err)
		}
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case BackendMemory:
		return nil
	case BackendFile, BackendSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path must be set when store.backend is %q", c.Store.Backend)
		}
		return nil
	default:
		return fmt.Errorf("store.backend: unsupported value %q (expected memory, file, or sqlite)", c.Store.Backend)
	}
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout < 0 {
		return errors.New("notifications.request_timeout must be positive (seconds)")
	}
	if c.Notifications.WebhookURL != "" {
		parsed, err := url.Parse(c.Notifications.WebhookURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("notifications.webhook_url: invalid URL %q", c.Notifications.WebhookURL)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

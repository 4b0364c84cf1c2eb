package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeLanguage()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeStore(); err != nil {
		return err
	}
	c.normalizeNotifications()
	c.normalizeLogging()
	c.HTTP.Bind = strings.TrimSpace(c.HTTP.Bind)
	c.HTTP.Token = strings.TrimSpace(c.HTTP.Token)
	return nil
}

func (c *Config) normalizeLanguage() {
	c.Language.Default = strings.TrimSpace(c.Language.Default)
	c.Language.Mode = strings.ToLower(strings.TrimSpace(c.Language.Mode))
	if c.Language.Mode == "" {
		c.Language.Mode = defaultMode
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.Socket) == "" {
		c.Paths.Socket = filepath.Join(c.Paths.StateDir, defaultSocketName)
	}
	if c.Paths.Socket, err = expandPath(c.Paths.Socket); err != nil {
		return fmt.Errorf("paths.socket: %w", err)
	}
	return nil
}

func (c *Config) normalizeStore() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if c.Store.Backend == "" {
		c.Store.Backend = defaultStoreBackend
	}
	c.Store.Path = strings.TrimSpace(c.Store.Path)
	switch c.Store.Backend {
	case BackendFile:
		if c.Store.Path == "" {
			c.Store.Path = filepath.Join(c.Paths.StateDir, defaultFileStoreName)
		}
	case BackendSQLite:
		if c.Store.Path == "" {
			c.Store.Path = filepath.Join(c.Paths.StateDir, defaultSQLiteStoreName)
		}
	default:
		return nil
	}
	var err error
	if c.Store.Path, err = expandPath(c.Store.Path); err != nil {
		return fmt.Errorf("store.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	c.Notifications.WebhookURL = strings.TrimSpace(c.Notifications.WebhookURL)
	if c.Notifications.RequestTimeout == 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

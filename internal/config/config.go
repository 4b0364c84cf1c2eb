package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Language controls which accessor backs the boundary and how the initial code is chosen.
type Language struct {
	// Default is the code used when the store holds no value yet.
	// An empty default falls back to the system locale, then en_US.
	Default string `toml:"default" env:"LANGENGINE_LANGUAGE"`
	// Mode is "placeholder" (fixed en_US, setter ignored) or "state".
	Mode          string `toml:"mode" env:"LANGENGINE_MODE"`
	ValidateCodes bool   `toml:"validate_codes" env:"LANGENGINE_VALIDATE_CODES"`
	DetectSystem  bool   `toml:"detect_system"`
}

// Store selects where the current language is persisted.
type Store struct {
	Backend string `toml:"backend" env:"LANGENGINE_STORE_BACKEND"`
	Path    string `toml:"path" env:"LANGENGINE_STORE_PATH"`
}

// Paths contains runtime directories and the daemon socket.
type Paths struct {
	StateDir string `toml:"state_dir" env:"LANGENGINE_STATE_DIR"`
	Socket   string `toml:"socket"`
}

// HTTP configures the optional HTTP API served by the daemon.
type HTTP struct {
	Bind string `toml:"bind" env:"LANGENGINE_HTTP_BIND"`
	// Token, when set, is required as "Authorization: Bearer <token>".
	Token string `toml:"token" env:"LANGENGINE_HTTP_TOKEN"`
}

// Notifications configures how the host application is told about changes.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic" env:"LANGENGINE_NTFY_TOPIC"`
	WebhookURL     string `toml:"webhook_url" env:"LANGENGINE_WEBHOOK_URL"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" env:"LANGENGINE_LOG_FORMAT"`
	Level  string `toml:"level" env:"LANGENGINE_LOG_LEVEL"`
}

// Config encapsulates all configuration values for langengine.
//
// Configuration sections by subsystem:
//   - Language: accessor mode, default code, validation
//   - Store: persistence backend and location
//   - Paths: state directory and daemon socket
//   - HTTP: optional HTTP API bind address
//   - Notifications: ntfy and CloudEvents webhook targets
//   - Logging: log format and level
type Config struct {
	Language      Language      `toml:"language"`
	Store         Store         `toml:"store"`
	Paths         Paths         `toml:"paths"`
	HTTP          HTTP          `toml:"http"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, "", false, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(defaultProjectConfigFileName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state directory and the parent of a file or sqlite store.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.StateDir}
	if c.Store.Backend != BackendMemory && strings.TrimSpace(c.Store.Path) != "" {
		dirs = append(dirs, filepath.Dir(c.Store.Path))
	}
	if socket := strings.TrimSpace(c.Paths.Socket); socket != "" {
		dirs = append(dirs, filepath.Dir(socket))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Stateful reports whether the stateful engine should back the accessor.
func (c *Config) Stateful() bool {
	return c.Language.Mode == ModeState
}

// LockPath returns the daemon single-instance lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, defaultLockName)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

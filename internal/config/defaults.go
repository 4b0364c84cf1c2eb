package config

const (
	defaultLanguage              = "en_US"
	defaultMode                  = ModePlaceholder
	defaultStoreBackend          = BackendMemory
	defaultStateDir              = "~/.local/share/langengine"
	defaultFileStoreName         = "settings.toml"
	defaultSQLiteStoreName       = "langengine.db"
	defaultSocketName            = "langengine.sock"
	defaultLockName              = "langengine.lock"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultNotifyRequestTimeout  = 10
	defaultConfigPath            = "~/.config/langengine/config.toml"
	defaultProjectConfigFileName = "langengine.toml"
)

// Accessor modes.
const (
	ModePlaceholder = "placeholder"
	ModeState       = "state"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Language: Language{
			Default: defaultLanguage,
			Mode:    defaultMode,
		},
		Store: Store{
			Backend: defaultStoreBackend,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

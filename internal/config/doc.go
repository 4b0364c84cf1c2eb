// Package config loads, normalizes, and validates langengine configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours LANGENGINE_* environment overrides.
// The Config type centralizes the knobs the bridge, daemon, and CLI need: the
// accessor mode, where the current language is persisted, and how the host
// application is told about changes.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical modes and backends, and clear validation errors.
package config

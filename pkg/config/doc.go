// Package config handles settings management for fsorg.
// It layers the embedded defaults, an optional TOML settings file and
// FSORG_* environment variables with koanf, and decodes the result into
// a Config value that the CLI threads through every command.
package config

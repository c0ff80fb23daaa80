// Package config provides configuration loading for leapcheck. Values are
// layered koanf-style: built-in defaults, then the project config file, then
// LEAPCHECK_* environment variables, then CLI flags.
package config

import "context"

// ServerConfig holds web UI server configuration.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// SessionSecret signs the session cookies that key per-browser
	// workspaces. The default is fine for a local demo tool.
	SessionSecret string `koanf:"session_secret"`

	// Watch re-loads sessions when the source dataset file changes on disk.
	Watch bool `koanf:"watch"`
}

// Config is the full leapcheck configuration.
type Config struct {
	// DataDir is the fixed sample-data directory datasets are read from.
	DataDir string `koanf:"data_dir"`

	// Dataset is the CSV filename (under DataDir) loaded at session start.
	Dataset string `koanf:"dataset"`

	// Suite is the path of the YAML expectation suite file.
	Suite string `koanf:"suite"`

	Verbose bool         `koanf:"verbose"`
	Server  ServerConfig `koanf:"server"`
}

// configKey stores a *Config in a context.
type configKey struct{}

// NewContext returns a context carrying the config.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from the context, falling back to
// defaults when none was stored.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey{}).(*Config); ok {
		return cfg
	}
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

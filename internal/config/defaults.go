package config

// Default configuration values.
const (
	DefaultDataDir = "sample_data"
	DefaultDataset = "static_expectations_dataset.csv"
	DefaultSuite   = "expectations.yaml"

	DefaultServerHost = "127.0.0.1"
	DefaultServerPort = 8090

	// Cookie-signing secret for local use. Sessions only key in-memory demo
	// state, nothing sensitive rides on them.
	DefaultSessionSecret = "leapcheck-dev-secret"
)

// Defaults returns the default configuration as a flat koanf key map, used
// as the base layer of the load order.
func Defaults() map[string]any {
	return map[string]any{
		"data_dir":              DefaultDataDir,
		"dataset":               DefaultDataset,
		"suite":                 DefaultSuite,
		"verbose":               false,
		"server.host":           DefaultServerHost,
		"server.port":           DefaultServerPort,
		"server.session_secret": DefaultSessionSecret,
		"server.watch":          false,
	}
}

// ApplyDefaults fills zero values in a Config.
func ApplyDefaults(c *Config) {
	if c == nil {
		return
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.Dataset == "" {
		c.Dataset = DefaultDataset
	}
	if c.Suite == "" {
		c.Suite = DefaultSuite
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultServerHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
	if c.Server.SessionSecret == "" {
		c.Server.SessionSecret = DefaultSessionSecret
	}
}

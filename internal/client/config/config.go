package config

import "time"

// Config holds runtime settings for the Orator CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - DatabasePath: path of the local SQLite mirror file.
//   - RequestTimeout/AuthTimeout/UploadTimeout: per-call deadlines for
//     regular, credential and video-upload requests.
//   - PollInterval/PollMaxAttempts: video-analysis watcher cadence and bound.
//   - OnlineCheckInterval: how often the client probes server reachability.
type Config struct {
	APIBaseURL   string
	DatabasePath string

	RequestTimeout time.Duration
	AuthTimeout    time.Duration
	UploadTimeout  time.Duration

	PollInterval    time.Duration
	PollMaxAttempts int

	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = "orator.db"
	c.RequestTimeout = 5 * time.Second
	c.AuthTimeout = 15 * time.Second
	c.UploadTimeout = 120 * time.Second
	c.PollInterval = 5 * time.Second
	c.PollMaxAttempts = 240
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

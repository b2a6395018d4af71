package config

import "time"

// Config holds runtime settings for the CloudSync terminal client.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API, including the /api prefix.
//   - SocketURL: websocket endpoint for the realtime channel.
//   - StorePath: path to the local sqlite store (token + profile snapshot).
//   - TokenRefreshInterval: how often the token watcher checks the bearer
//     token expiry and calls /auth/refresh when it is close.
//
// Units: TokenRefreshInterval is a time.Duration (e.g. 30*time.Second).
type Config struct {
	APIBaseURL           string
	SocketURL            string
	StorePath            string
	TokenRefreshInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080/api"
	c.SocketURL = "ws://localhost:8080/ws"
	c.StorePath = "cloudsync.db"
	c.TokenRefreshInterval = 30 * time.Second
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

// Package config holds runtime settings for the storefront client and the
// defaults → JSON file → command-line flags layering used to load them.
package config

import "time"

// Config holds runtime settings for the storefront client.
//
// Fields:
//   - APIBaseURL: base URL of the storefront backend, e.g. "http://localhost:8000".
//   - StateDBPath: path to the SQLite file with local client state.
//   - RequestTimeout: per-request timeout for backend calls.
//   - DeliveryFee: fixed delivery fee added to every order; there is no
//     free-shipping tier.
//   - CurrencyLabel: suffix shown next to amounts in the UI.
type Config struct {
	APIBaseURL     string
	StateDBPath    string
	RequestTimeout time.Duration
	DeliveryFee    int64
	CurrencyLabel  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.StateDBPath = "storefront.db"
	c.RequestTimeout = 15 * time.Second
	c.DeliveryFee = 349
	c.CurrencyLabel = "₽"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

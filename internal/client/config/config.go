package config

import "time"

// Config holds runtime settings for the wallet CLI.
type Config struct {
	ServerEndpointAddr string
	WalletPath         string
	SecretKey          string
	RequestTimeout     time.Duration
	LogLevel           string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.WalletPath = "wallet.db"
	c.SecretKey = ""
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig applies defaults, then JSON (if present), then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// ValueFlags lists every flag that takes a value, so the CLI can separate
// flags from the sub-command and its operands.
var ValueFlags = []string{"-a", "-w", "-s", "-t", "-v", "-c", "-config"}

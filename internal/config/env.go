package config

import "os"

// Environment variables read by loadFromEnv.
const (
	EnvServerAddress = "TODOT_SERVER_ADDRESS"
	EnvDataDir       = "TODOT_DATA_DIR"
	EnvLogLevel      = "TODOT_LOG_LEVEL"
	EnvDialTimeout   = "TODOT_DIAL_TIMEOUT"
)

func loadFromEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvServerAddress); ok {
		cfg.ServerAddress = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvDialTimeout); v != "" {
		cfg.DialTimeout = v
	}
}

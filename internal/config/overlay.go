package config

import (
	"os"
	"strconv"
)

// OverlayEnv applies environment overrides on top of the loaded file. The
// desktop shell passes these when it owns the port/backend choice.
func OverlayEnv(cfg *Config) {
	if v := os.Getenv("WORKHUB_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("WORKHUB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = p
		}
	}
	if v := os.Getenv("WORKHUB_DATA_DIR"); v != "" {
		cfg.App.DataDir = v
	}
}

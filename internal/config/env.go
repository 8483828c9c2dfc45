package config

import "os"

// ApplyEnv overlays environment variables on top of a loaded config.
// Only deployment-facing knobs are exposed this way.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("GUIDEPOST_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("GUIDEPOST_DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("GUIDEPOST_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML can carry "24h"-style values.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server"`
	Data     DataConfig     `yaml:"data" json:"data"`
	Guidance GuidanceConfig `yaml:"guidance" json:"guidance"`
	Log      LogConfig      `yaml:"log" json:"log"`
}

type ServerConfig struct {
	Port string `yaml:"port" json:"port"`
}

type DataConfig struct {
	Dir string `yaml:"dir" json:"dir"`
}

type GuidanceConfig struct {
	// TierCapacity bounds every tier list after derivation.
	TierCapacity int `yaml:"tier_capacity" json:"tier_capacity"`

	DailyResetWindow   Duration `yaml:"daily_reset_window" json:"daily_reset_window"`
	WeeklyResetWindow  Duration `yaml:"weekly_reset_window" json:"weekly_reset_window"`
	MonthlyResetWindow Duration `yaml:"monthly_reset_window" json:"monthly_reset_window"`

	// PollInterval drives the lazy reset check from main.
	PollInterval Duration `yaml:"poll_interval" json:"poll_interval"`
}

type LogConfig struct {
	Level string `yaml:"level" json:"level"` // "debug" | "info" | "warn" | "error"
}

func (c *Config) ApplyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8470"
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Guidance.TierCapacity <= 0 {
		c.Guidance.TierCapacity = 3
	}
	if c.Guidance.DailyResetWindow <= 0 {
		c.Guidance.DailyResetWindow = Duration(24 * time.Hour)
	}
	if c.Guidance.WeeklyResetWindow <= 0 {
		c.Guidance.WeeklyResetWindow = Duration(7 * 24 * time.Hour)
	}
	if c.Guidance.MonthlyResetWindow <= 0 {
		c.Guidance.MonthlyResetWindow = Duration(30 * 24 * time.Hour)
	}
	if c.Guidance.PollInterval <= 0 {
		c.Guidance.PollInterval = Duration(time.Hour)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func Default() *Config {
	var c Config
	c.ApplyDefaults()
	return &c
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}

// LoadOrDefault reads the config file when present and falls back to defaults
// when it is missing. A malformed file is still an error.
func LoadOrDefault(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return c, nil
}

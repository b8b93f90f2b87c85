package config

import "github.com/spf13/viper"

// ServerConfig holds configuration for the HTTP API server.
type ServerConfig struct {
	Port          int    `mapstructure:"port"`
	HistoryPath   string `mapstructure:"history_path"`
	TelemetryPath string `mapstructure:"telemetry_path"`
}

// Config holds all runtime configuration for a triage invocation.
// Values are populated from .triage.yaml, TRIAGE_* env vars, and CLI flags.
type Config struct {
	Strategy     string       `mapstructure:"strategy"`
	SuggestCount int          `mapstructure:"suggest_count"`
	Verbose      bool         `mapstructure:"verbose"`
	Server       ServerConfig `mapstructure:"server"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("strategy", "smart_balance")
	viper.SetDefault("suggest_count", 3)
	viper.SetDefault("verbose", false)
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.history_path", "")
	viper.SetDefault("server.telemetry_path", "")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration with priority order:
// 1. Environment variables (LTBRIDGE_ prefix)
// 2. Configuration file (config.yaml)
// 3. Default values
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/ltbridge/")
	v.AddConfigPath("./configs/")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("LTBRIDGE")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")

	v.SetDefault("backend.log_table", "logs")
	v.SetDefault("backend.span_table", "spans")
	v.SetDefault("backend.ts_column", "timestamp")
	v.SetDefault("backend.level_encoding", "string")
	v.SetDefault("backend.inverted_index", false)
	v.SetDefault("backend.attributes_map", "attributes")
	v.SetDefault("backend.resources_map", "resources")
	v.SetDefault("backend.span_attrs_map", "span_attributes")
	v.SetDefault("backend.resource_attrs_map", "resource_attributes")

	v.SetDefault("query.default_trace_limit", 20)
	v.SetDefault("query.max_trace_limit", 1000)
}

func validateConfig(cfg *Config) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", cfg.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error", "fatal"}
	if !contains(validLogLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	switch cfg.Backend.LevelEncoding {
	case "string", "numeric":
	default:
		return fmt.Errorf("invalid backend.level_encoding: %s (want \"string\" or \"numeric\")", cfg.Backend.LevelEncoding)
	}

	if cfg.Backend.LogTable == "" {
		return fmt.Errorf("backend.log_table is required")
	}
	if cfg.Backend.SpanTable == "" {
		return fmt.Errorf("backend.span_table is required")
	}

	if cfg.Query.DefaultTraceLimit < 1 {
		return fmt.Errorf("query.default_trace_limit must be at least 1")
	}
	if cfg.Query.MaxTraceLimit < cfg.Query.DefaultTraceLimit {
		return fmt.Errorf("query.max_trace_limit must be >= query.default_trace_limit")
	}

	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

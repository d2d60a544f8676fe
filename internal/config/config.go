package config

// Config is the top-level process configuration, loaded by Load from
// environment variables, a config file, and defaults, in that priority order.
type Config struct {
	Environment string        `mapstructure:"environment" yaml:"environment"`
	Port        int           `mapstructure:"port" yaml:"port"`
	LogLevel    string        `mapstructure:"log_level" yaml:"log_level"`
	Backend     BackendConfig `mapstructure:"backend" yaml:"backend"`
	// AdditionalBackends lets a deployment front more than one columnar
	// store (e.g. a hot cluster and a cold archive); requests pick one by
	// name via the "backend" query parameter, falling back to Backend.
	AdditionalBackends map[string]BackendConfig `mapstructure:"additional_backends" yaml:"additional_backends"`
	Query              QueryConfig              `mapstructure:"query" yaml:"query"`
}

// BackendConfig describes the columnar store ltbridge lowers SQL for. Its
// fields mirror sqlbuilder.BackendProfile one-to-one so operators can tune
// the dialect without a code change.
type BackendConfig struct {
	LogTable         string `mapstructure:"log_table" yaml:"log_table"`
	SpanTable        string `mapstructure:"span_table" yaml:"span_table"`
	TSColumn         string `mapstructure:"ts_column" yaml:"ts_column"`
	LevelEncoding    string `mapstructure:"level_encoding" yaml:"level_encoding"` // "string" or "numeric"
	InvertedIndex    bool   `mapstructure:"inverted_index" yaml:"inverted_index"`
	AttributesMap    string `mapstructure:"attributes_map" yaml:"attributes_map"`
	ResourcesMap     string `mapstructure:"resources_map" yaml:"resources_map"`
	SpanAttrsMap     string `mapstructure:"span_attrs_map" yaml:"span_attrs_map"`
	ResourceAttrsMap string `mapstructure:"resource_attrs_map" yaml:"resource_attrs_map"`
}

// QueryConfig bounds how much work a single translated query may ask of the
// backend.
type QueryConfig struct {
	DefaultTraceLimit int `mapstructure:"default_trace_limit" yaml:"default_trace_limit"`
	MaxTraceLimit     int `mapstructure:"max_trace_limit" yaml:"max_trace_limit"`
}

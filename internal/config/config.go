// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load(ctx) layers an optional YAML file and HABITAT_* env vars on top.
// - Loader errors wrap this package's sentinels.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxBodyBytes caps the size of a POST /evaluate request body.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// MetricsNamespace prefixes every Prometheus metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// ServiceName is attached to metrics and used as the tracer name.
	ServiceName string `koanf:"service_name"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		MaxBodyBytes:     64 << 10,
		MetricsNamespace: "habitat",
		ServiceName:      "habitatd",
	}
}

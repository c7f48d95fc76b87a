package config

import "time"

// Config is the root configuration structure for the appkit toolkit
type Config struct {
	Service       ServiceConfig       `mapstructure:"service" yaml:"service"`
	Storage       StorageConfig       `mapstructure:"storage" yaml:"storage"`
	Transport     TransportConfig     `mapstructure:"transport" yaml:"transport"`
	Preferences   PreferencesConfig   `mapstructure:"preferences" yaml:"preferences"`
	Observability ObservabilityConfig `mapstructure:"observability" yaml:"observability"`
}

// ServiceConfig configures service identity metadata.
type ServiceConfig struct {
	Name        string `mapstructure:"name" yaml:"name"`
	Environment string `mapstructure:"environment" yaml:"environment"`
}

// StorageConfig configures the local persistent store registry
type StorageConfig struct {
	// Dir is the directory holding database files. Empty means
	// local storage is unavailable and store opens fail.
	Dir         string        `mapstructure:"dir" yaml:"dir"`
	FileMode    uint32        `mapstructure:"file_mode" yaml:"file_mode"`
	OpenTimeout time.Duration `mapstructure:"open_timeout" yaml:"open_timeout"`
}

// TransportConfig configures the HTTP API client
type TransportConfig struct {
	BaseURL        string            `mapstructure:"base_url" yaml:"base_url"`
	RequestTimeout time.Duration     `mapstructure:"request_timeout" yaml:"request_timeout"`
	Headers        map[string]string `mapstructure:"headers" yaml:"headers"`
}

// PreferencesConfig configures synchronous UI preference persistence
type PreferencesConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// ObservabilityConfig configures logging output
type ObservabilityConfig struct {
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// DefaultConfig returns a Config populated with defaults
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:        "appkit",
			Environment: "development",
		},
		Storage: StorageConfig{
			Dir:         "",
			FileMode:    0o600,
			OpenTimeout: 5 * time.Second,
		},
		Transport: TransportConfig{
			BaseURL:        "",
			RequestTimeout: 10 * time.Second,
			Headers:        map[string]string{},
		},
		Preferences: PreferencesConfig{
			Enabled: false,
			Path:    "",
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}

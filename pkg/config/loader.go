package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Loader defines the interface for loading configuration
type Loader interface {
	Load() (*Config, error)
	Validate(*Config) error
}

// ViperLoader implements Loader using Viper for configuration management
type ViperLoader struct {
	configFile string
	envPrefix  string
}

// NewViperLoader creates a new ViperLoader
// configFile: path to configuration file (optional, can be empty)
// envPrefix: prefix for environment variables (e.g., "APPKIT")
func NewViperLoader(configFile, envPrefix string) *ViperLoader {
	return &ViperLoader{
		configFile: configFile,
		envPrefix:  envPrefix,
	}
}

// Load loads configuration with precedence: ENV > file > defaults
func (l *ViperLoader) Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	l.setDefaults(v, defaults)

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			// Only return error if file was explicitly specified but couldn't be read
			return nil, fmt.Errorf("failed to read config file %s: %w", l.configFile, err)
		}
	}

	// Environment variables override file config through explicit bindings.
	v.SetEnvPrefix(l.envPrefix)
	l.bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := l.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// bindEnvVars explicitly binds environment variables for nested structs
func (l *ViperLoader) bindEnvVars(v *viper.Viper) {
	// Service
	v.BindEnv("service.name", l.prefixedEnv("SERVICE_NAME"))
	v.BindEnv("service.environment", l.prefixedEnv("SERVICE_ENVIRONMENT"), l.prefixedEnv("ENVIRONMENT"))

	// Storage
	v.BindEnv("storage.dir", l.prefixedEnv("STORAGE_DIR"))
	v.BindEnv("storage.file_mode", l.prefixedEnv("STORAGE_FILE_MODE"))
	v.BindEnv("storage.open_timeout", l.prefixedEnv("STORAGE_OPEN_TIMEOUT"))

	// Transport
	v.BindEnv("transport.base_url", l.prefixedEnv("TRANSPORT_BASE_URL"))
	v.BindEnv("transport.request_timeout", l.prefixedEnv("TRANSPORT_REQUEST_TIMEOUT"))

	// Preferences
	v.BindEnv("preferences.enabled", l.prefixedEnv("PREFERENCES_ENABLED"))
	v.BindEnv("preferences.path", l.prefixedEnv("PREFERENCES_PATH"))

	// Observability
	v.BindEnv("observability.log_level", l.prefixedEnv("OBSERVABILITY_LOG_LEVEL"))
	v.BindEnv("observability.log_format", l.prefixedEnv("OBSERVABILITY_LOG_FORMAT"))
}

func (l *ViperLoader) prefixedEnv(suffix string) string {
	prefix := strings.TrimSpace(l.envPrefix)
	if prefix == "" {
		prefix = "APPKIT"
	}
	return fmt.Sprintf("%s_%s", strings.ToUpper(prefix), suffix)
}

// setDefaults sets default values in Viper from the default config
func (l *ViperLoader) setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("service.name", cfg.Service.Name)
	v.SetDefault("service.environment", cfg.Service.Environment)

	v.SetDefault("storage.dir", cfg.Storage.Dir)
	v.SetDefault("storage.file_mode", cfg.Storage.FileMode)
	v.SetDefault("storage.open_timeout", cfg.Storage.OpenTimeout)

	v.SetDefault("transport.base_url", cfg.Transport.BaseURL)
	v.SetDefault("transport.request_timeout", cfg.Transport.RequestTimeout)
	v.SetDefault("transport.headers", cfg.Transport.Headers)

	v.SetDefault("preferences.enabled", cfg.Preferences.Enabled)
	v.SetDefault("preferences.path", cfg.Preferences.Path)

	v.SetDefault("observability.log_level", cfg.Observability.LogLevel)
	v.SetDefault("observability.log_format", cfg.Observability.LogFormat)
}

// Validate validates the configuration and returns detailed errors
func (l *ViperLoader) Validate(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.Service.Name) == "" {
		errs = append(errs, errors.New("service.name is required"))
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, strings.ToLower(cfg.Observability.LogLevel)) {
		errs = append(errs, fmt.Errorf("invalid observability.log_level: %s (must be one of: %v)", cfg.Observability.LogLevel, validLevels))
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, strings.ToLower(cfg.Observability.LogFormat)) {
		errs = append(errs, fmt.Errorf("invalid observability.log_format: %s (must be one of: %v)", cfg.Observability.LogFormat, validFormats))
	}

	if cfg.Storage.OpenTimeout < 0 {
		errs = append(errs, errors.New("storage.open_timeout must not be negative"))
	}

	if cfg.Transport.BaseURL != "" {
		parsed, err := url.Parse(cfg.Transport.BaseURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			errs = append(errs, fmt.Errorf("invalid transport.base_url: %s", cfg.Transport.BaseURL))
		}
	}
	if cfg.Transport.RequestTimeout < 0 {
		errs = append(errs, errors.New("transport.request_timeout must not be negative"))
	}

	if cfg.Preferences.Enabled && strings.TrimSpace(cfg.Preferences.Path) == "" {
		errs = append(errs, errors.New("preferences.path is required when preferences are enabled"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestViperLoader_Load_Defaults(t *testing.T) {
	loader := NewViperLoader("", "APPKIT_TEST")

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Service.Name != "appkit" {
		t.Errorf("Expected service name 'appkit', got %q", cfg.Service.Name)
	}
	if cfg.Storage.Dir != "" {
		t.Errorf("Expected empty storage dir by default, got %q", cfg.Storage.Dir)
	}
	if cfg.Storage.OpenTimeout != 5*time.Second {
		t.Errorf("Expected open timeout 5s, got %v", cfg.Storage.OpenTimeout)
	}
	if cfg.Transport.RequestTimeout != 10*time.Second {
		t.Errorf("Expected request timeout 10s, got %v", cfg.Transport.RequestTimeout)
	}
	if cfg.Preferences.Enabled {
		t.Error("Expected preferences disabled by default")
	}
	if cfg.Observability.LogLevel != "info" {
		t.Errorf("Expected log level 'info', got %q", cfg.Observability.LogLevel)
	}
	if cfg.Observability.LogFormat != "json" {
		t.Errorf("Expected log format 'json', got %q", cfg.Observability.LogFormat)
	}
}

func TestViperLoader_Load_FromFile(t *testing.T) {
	content := `
service:
  name: demo-app
  environment: production
storage:
  dir: /var/lib/demo-app
  open_timeout: 2s
transport:
  base_url: https://api.example.com
observability:
  log_level: debug
  log_format: text
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	loader := NewViperLoader(path, "APPKIT_TEST")
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Service.Name != "demo-app" {
		t.Errorf("Expected service name 'demo-app', got %q", cfg.Service.Name)
	}
	if cfg.Storage.Dir != "/var/lib/demo-app" {
		t.Errorf("Expected storage dir '/var/lib/demo-app', got %q", cfg.Storage.Dir)
	}
	if cfg.Storage.OpenTimeout != 2*time.Second {
		t.Errorf("Expected open timeout 2s, got %v", cfg.Storage.OpenTimeout)
	}
	if cfg.Transport.BaseURL != "https://api.example.com" {
		t.Errorf("Expected base URL, got %q", cfg.Transport.BaseURL)
	}
	if cfg.Observability.LogLevel != "debug" {
		t.Errorf("Expected log level 'debug', got %q", cfg.Observability.LogLevel)
	}
}

func TestViperLoader_Load_MissingFileFails(t *testing.T) {
	loader := NewViperLoader(filepath.Join(t.TempDir(), "missing.yaml"), "APPKIT_TEST")

	if _, err := loader.Load(); err == nil {
		t.Fatal("Expected error for explicitly specified missing file")
	}
}

func TestViperLoader_Load_EnvOverridesFile(t *testing.T) {
	content := `
storage:
  dir: /from-file
observability:
  log_level: info
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("APPKIT_TEST_STORAGE_DIR", "/from-env")
	t.Setenv("APPKIT_TEST_OBSERVABILITY_LOG_LEVEL", "warn")

	loader := NewViperLoader(path, "APPKIT_TEST")
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Storage.Dir != "/from-env" {
		t.Errorf("Expected env to override file, got %q", cfg.Storage.Dir)
	}
	if cfg.Observability.LogLevel != "warn" {
		t.Errorf("Expected env log level 'warn', got %q", cfg.Observability.LogLevel)
	}
}

func TestViperLoader_Load_EnvironmentAlias(t *testing.T) {
	t.Setenv("APPKIT_TEST_ENVIRONMENT", "staging")

	loader := NewViperLoader("", "APPKIT_TEST")
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Service.Environment != "staging" {
		t.Errorf("Expected environment 'staging', got %q", cfg.Service.Environment)
	}
}

func TestViperLoader_Validate(t *testing.T) {
	loader := NewViperLoader("", "APPKIT_TEST")

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(cfg *Config) {},
			wantErr: "",
		},
		{
			name:    "missing service name",
			mutate:  func(cfg *Config) { cfg.Service.Name = " " },
			wantErr: "service.name is required",
		},
		{
			name:    "invalid log level",
			mutate:  func(cfg *Config) { cfg.Observability.LogLevel = "verbose" },
			wantErr: "invalid observability.log_level",
		},
		{
			name:    "invalid log format",
			mutate:  func(cfg *Config) { cfg.Observability.LogFormat = "xml" },
			wantErr: "invalid observability.log_format",
		},
		{
			name:    "negative open timeout",
			mutate:  func(cfg *Config) { cfg.Storage.OpenTimeout = -time.Second },
			wantErr: "storage.open_timeout must not be negative",
		},
		{
			name:    "invalid base url",
			mutate:  func(cfg *Config) { cfg.Transport.BaseURL = "not a url" },
			wantErr: "invalid transport.base_url",
		},
		{
			name:    "negative request timeout",
			mutate:  func(cfg *Config) { cfg.Transport.RequestTimeout = -time.Second },
			wantErr: "transport.request_timeout must not be negative",
		},
		{
			name:    "preferences enabled without path",
			mutate:  func(cfg *Config) { cfg.Preferences.Enabled = true },
			wantErr: "preferences.path is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := loader.Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() returned unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestViperLoader_Validate_CollectsAllErrors(t *testing.T) {
	loader := NewViperLoader("", "APPKIT_TEST")

	cfg := DefaultConfig()
	cfg.Service.Name = ""
	cfg.Observability.LogLevel = "verbose"
	cfg.Transport.BaseURL = "not a url"

	err := loader.Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation errors")
	}

	for _, want := range []string{"service.name", "observability.log_level", "transport.base_url"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected combined error to mention %s, got %q", want, err.Error())
		}
	}
}

package logger

import (
	"context"
	"testing"
)

func TestNewZapLogger(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "json format with debug level",
			config: Config{
				Level:  DebugLevel,
				Format: JSONFormat,
			},
			wantErr: false,
		},
		{
			name: "text format with info level",
			config: Config{
				Level:  InfoLevel,
				Format: TextFormat,
			},
			wantErr: false,
		},
		{
			name: "json format with error level",
			config: Config{
				Level:  ErrorLevel,
				Format: JSONFormat,
			},
			wantErr: false,
		},
		{
			name: "default to info level for invalid level",
			config: Config{
				Level:  "invalid",
				Format: JSONFormat,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewZapLogger(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewZapLogger() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && logger == nil {
				t.Error("NewZapLogger() returned nil logger")
			}
			if logger != nil {
				_ = logger.Sync()
			}
		})
	}
}

func TestZapLogger_With(t *testing.T) {
	logger, err := NewZapLogger(DefaultConfig())
	if err != nil {
		t.Fatalf("NewZapLogger() returned error: %v", err)
	}

	child := logger.With("component", "localstore")
	if child == nil {
		t.Fatal("With() returned nil logger")
	}
	if child == Logger(logger) {
		t.Error("With() should return a new logger instance")
	}
}

func TestZapLogger_WithContext(t *testing.T) {
	logger, err := NewZapLogger(DefaultConfig())
	if err != nil {
		t.Fatalf("NewZapLogger() returned error: %v", err)
	}

	t.Run("context with request ID", func(t *testing.T) {
		ctx := ContextWithRequestID(context.Background(), "req-123")
		child := logger.WithContext(ctx)
		if child == Logger(logger) {
			t.Error("Expected a child logger when context carries a request ID")
		}
	})

	t.Run("context without request ID", func(t *testing.T) {
		child := logger.WithContext(context.Background())
		if child != Logger(logger) {
			t.Error("Expected the same logger when context has no request ID")
		}
	})
}

func TestRequestIDFromContext(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("Expected empty request ID, got %q", got)
	}

	ctx := ContextWithRequestID(context.Background(), "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("Expected 'req-123', got %q", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{input: "debug", want: DebugLevel},
		{input: "info", want: InfoLevel},
		{input: "warn", want: WarnLevel},
		{input: "warning", want: WarnLevel},
		{input: "error", want: ErrorLevel},
		{input: "verbose", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLogLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLogFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    LogFormat
		wantErr bool
	}{
		{input: "json", want: JSONFormat},
		{input: "text", want: TextFormat},
		{input: "console", want: TextFormat},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLogFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLogFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewNopLogger(t *testing.T) {
	logger := NewNopLogger()
	if logger == nil {
		t.Fatal("NewNopLogger() returned nil")
	}

	// None of these should panic or produce output.
	logger.Debug("debug", "k", "v")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")
	logger.With("k", "v").Info("child")
	logger.WithContext(context.Background()).Info("ctx")
}

package logger

import "go.uber.org/zap"

// NewNopLogger returns a Logger that discards all output. Useful as a default
// when callers pass a nil logger and in tests that do not assert on logs.
func NewNopLogger() Logger {
	nop := zap.NewNop()
	return &ZapLogger{
		logger: nop,
		sugar:  nop.Sugar(),
	}
}

package notekit

import (
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the minimal structured logging surface the library needs.
// Key-value pairs follow the usual alternating convention.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

// charmLogger adapts *charmlog.Logger to the Logger interface.
type charmLogger struct {
	l *charmlog.Logger
}

func (c *charmLogger) Debug(msg string, keyvals ...any) { c.l.Debug(msg, keyvals...) }
func (c *charmLogger) Info(msg string, keyvals ...any)  { c.l.Info(msg, keyvals...) }
func (c *charmLogger) Warn(msg string, keyvals ...any)  { c.l.Warn(msg, keyvals...) }
func (c *charmLogger) Error(msg string, keyvals ...any) { c.l.Error(msg, keyvals...) }

// NewLogger creates a Logger writing to stderr at the given level.
// Recognized levels are "debug", "info", "warn", and "error"; anything
// else falls back to info. When jsonOutput is true, log records are
// emitted as JSON lines.
func NewLogger(level string, jsonOutput bool) Logger {
	opts := charmlog.Options{
		ReportTimestamp: true,
		Level:           parseLevel(level),
	}
	if jsonOutput {
		opts.Formatter = charmlog.JSONFormatter
	}
	return &charmLogger{l: charmlog.NewWithOptions(os.Stderr, opts)}
}

func parseLevel(level string) charmlog.Level {
	switch level {
	case "debug":
		return charmlog.DebugLevel
	case "warn":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// nopLogger discards everything. It is the default when no logger is set.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

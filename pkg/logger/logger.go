package logger

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

const (
	// EnvVarLogLevel is the environment variable name for setting the log level.
	EnvVarLogLevel = "LOG_LEVEL"

	// EnvVarLogFile is the environment variable name for redirecting logs to a file.
	// The terminal host owns the screen, so it cannot log to stderr.
	EnvVarLogFile = "LOG_FILE"
)

// NewStructuredLogger creates a new structured logger writing to stderr.
// See NewStructuredLoggerWithWriter.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	return NewStructuredLoggerWithWriter(os.Stderr, module, version, level)
}

// NewStructuredLoggerWithWriter creates a new structured JSON logger with the
// specified log level writing to w.
// Defined module name and version are included in the logger's context.
// AddSource is enabled for debug level logging only.
// Parameters:
//   - w: Destination of the log records.
//   - module: The name of the module/application using the logger.
//   - version: The version of the module/application (e.g., "v1.0.0").
//   - level: The log level as a string (e.g., "debug", "info", "warn", "error").
//
// Returns:
//   - *slog.Logger: A pointer to the configured slog.Logger instance.
func NewStructuredLoggerWithWriter(w io.Writer, module, version, level string) *slog.Logger {
	lev := ParseLogLevel(level)

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lev,
		AddSource: lev <= slog.LevelDebug,
	})).With("module", module, "version", version)
}

// NewLogLogger creates a standard library log.Logger backed by slog, used as
// the HTTP server error log.
func NewLogLogger(level slog.Level, withSource bool) *log.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: withSource,
	})

	return slog.NewLogLogger(handler, level)
}

// SetDefaultLogger sets the default logger from the LOG_LEVEL environment
// variable, writing to stderr.
func SetDefaultLogger(module, version string) {
	SetDefaultLoggerWithLevel(module, version, os.Getenv(EnvVarLogLevel))
}

// SetDefaultLoggerWithLevel sets the default logger with the specified level,
// writing to stderr.
func SetDefaultLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// SetDefaultLoggerToFile sets the default logger to append to the file at
// path. The returned function closes the file.
// Parameters:
//   - path: Log file, created when missing.
//   - module: The name of the module/application using the logger.
//   - version: The version of the module/application.
//   - level: The log level as a string.
//
// Returns:
//   - func() error: Closes the log file.
//   - error: When the file cannot be opened.
func SetDefaultLoggerToFile(path, module, version, level string) (func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	slog.SetDefault(NewStructuredLoggerWithWriter(f, module, version, level))

	return f.Close, nil
}

// ParseLogLevel converts a string representation of a log level into a slog.Level.
// Defaults to slog.LevelInfo for unrecognized strings.
func ParseLogLevel(level string) slog.Level {
	var lev slog.Level

	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lev = slog.LevelDebug
	case "warn", "warning":
		lev = slog.LevelWarn
	case "error":
		lev = slog.LevelError
	default:
		lev = slog.LevelInfo
	}

	return lev
}

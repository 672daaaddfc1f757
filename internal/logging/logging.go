// Package logging configures the application's slog loggers: a structured
// JSON logger, a human-readable text logger, and rotated per-service file
// loggers.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

var structuredLogger *slog.Logger
var humanReadableLogger *slog.Logger

// handlerOptions keeps the handler options uniform across handlers.
func handlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{Level: level}
}

// Init initializes the logging system with structured and human-readable
// loggers. JSON goes to stdout, text to stderr.
func Init(level slog.Level) {
	structuredLogger = slog.New(slog.NewJSONHandler(os.Stdout, handlerOptions(level)))
	humanReadableLogger = slog.New(slog.NewTextHandler(os.Stderr, handlerOptions(level)))
	slog.SetDefault(structuredLogger)
}

// SetOutput redirects both loggers, preserving nothing but the given level.
// Used by tests to capture log output.
func SetOutput(structuredOut, humanOut io.Writer, level slog.Level) {
	structuredLogger = slog.New(slog.NewJSONHandler(structuredOut, handlerOptions(level)))
	humanReadableLogger = slog.New(slog.NewTextHandler(humanOut, handlerOptions(level)))
	slog.SetDefault(structuredLogger)
}

// Structured returns the globally configured structured (JSON) logger.
// Returns nil if Init() has not been called.
func Structured() *slog.Logger {
	return structuredLogger
}

// HumanReadable returns the globally configured human-readable logger.
// Returns nil if Init() has not been called.
func HumanReadable() *slog.Logger {
	return humanReadableLogger
}

// ForService creates a new logger instance with the 'service' attribute
// added, using the global structured logger as the base. Falls back to the
// slog default when Init() has not been called so library code never gets a
// nil logger.
func ForService(serviceName string) *slog.Logger {
	if structuredLogger == nil {
		return slog.Default().With("service", serviceName)
	}
	return structuredLogger.With("service", serviceName)
}

// NewFileLogger creates a slog.Logger writing JSON to the given file path
// with lumberjack rotation, tagged with the service name. It returns the
// logger and a function that releases the underlying writer.
func NewFileLogger(filePath, serviceName string, level slog.Level) (*slog.Logger, func() error, error) {
	logDir := filepath.Dir(filePath)
	if logDir != "." {
		// lumberjack does not create directories
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}
	}

	logWriter := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	handler := slog.NewJSONHandler(logWriter, handlerOptions(level))
	logger := slog.New(handler).With("service", serviceName)
	return logger, logWriter.Close, nil
}

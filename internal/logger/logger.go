// Package logger provides a wrapper around logrus for structured logging.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a new configured logger instance. Output goes to stderr:
// stdout belongs to the rendered views.
func NewLogger(logLevel string) *logrus.Logger {
	return NewLoggerTo(os.Stderr, logLevel, os.Getenv("ENVIRONMENT") == "production")
}

// NewLoggerTo creates a logger writing to w
func NewLoggerTo(w io.Writer, logLevel string, jsonFormat bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	// Parse and set log level
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', defaulting to info", logLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if jsonFormat {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// Discard returns a logger that drops everything, for tests and library callers
// that pass no logger
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

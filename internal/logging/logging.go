package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const logPrefix = "pybootstrap"

type AppLogger struct {
	logger *log.Logger
	debug  bool
}

var (
	defaultLogger *AppLogger
	once          sync.Once

	stderr io.Writer = os.Stderr
)

// GetDefault returns the default logger instance (singleton-like for convenience)
func GetDefault() *AppLogger {
	once.Do(func() {
		defaultLogger = NewAppLogger()
	})
	return defaultLogger
}

// Package-level convenience functions for quick logging
func Info(msg string, keyvals ...interface{}) {
	GetDefault().Info(msg, keyvals...)
}

func Warn(msg string, keyvals ...interface{}) {
	GetDefault().Warn(msg, keyvals...)
}

func Debug(msg string, keyvals ...interface{}) {
	GetDefault().Debug(msg, keyvals...)
}

func LogPerformance(operation string, start time.Time) {
	GetDefault().LogPerformance(operation, start)
}

func NewAppLogger() *AppLogger {
	debug := os.Getenv("DEBUG") != ""

	if debug {
		// Development: Log to file, clear on each run
		logger, logPath, err := newDebugFileLogger()
		if err == nil {
			logger.Info("Debug logging enabled", "log_file", logPath)
			return &AppLogger{logger: logger, debug: true}
		}

		// Unwritable working directory: keep debug output, send it to stderr
		logger = newStderrLogger()
		logger.SetLevel(log.DebugLevel)
		logger.Warn("Debug log file unavailable, logging to stderr", "error", err)
		return &AppLogger{logger: logger, debug: true}
	}

	// Production: warnings and errors to stderr only
	logger := newStderrLogger()
	logger.SetLevel(log.WarnLevel)
	return &AppLogger{logger: logger}
}

func newDebugFileLogger() (*log.Logger, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	logPath := filepath.Join(cwd, "pybootstrap.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, logPath, fmt.Errorf("failed to create debug log file: %w", err)
	}

	logger := log.NewWithOptions(logFile, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          logPrefix,
	})
	logger.SetLevel(log.DebugLevel)
	return logger, logPath, nil
}

func newStderrLogger() *log.Logger {
	return log.NewWithOptions(stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          logPrefix,
	})
}

// NewFileLogger opens path for appending and returns a logger that writes
// only to it, together with the file so the caller can close it.
func NewFileLogger(path string) (*AppLogger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       log.LogfmtFormatter,
	})
	logger.SetLevel(log.InfoLevel)

	return &AppLogger{logger: logger}, f, nil
}

// SetVerbose lowers the level to Info so step progress reaches stderr.
// It has no effect on a debug logger, which already logs everything.
func (al *AppLogger) SetVerbose(verbose bool) {
	if al.debug {
		return
	}
	if verbose {
		al.logger.SetLevel(log.InfoLevel)
		return
	}
	al.logger.SetLevel(log.WarnLevel)
}

// Log application events
func (al *AppLogger) Info(msg string, keyvals ...interface{}) {
	al.logger.Info(msg, keyvals...)
}

func (al *AppLogger) Warn(msg string, keyvals ...interface{}) {
	al.logger.Warn(msg, keyvals...)
}

func (al *AppLogger) Error(msg string, keyvals ...interface{}) {
	al.logger.Error(msg, keyvals...)
}

func (al *AppLogger) Debug(msg string, keyvals ...interface{}) {
	if al.debug {
		al.logger.Debug(msg, keyvals...)
	}
}

// Pretty print any object
func (al *AppLogger) DebugObject(name string, obj interface{}) {
	if al.debug {
		al.logger.Debug("Object dump", "name", name, "object", fmt.Sprintf("%+v", obj))
	}
}

// Log performance metrics
func (al *AppLogger) LogPerformance(operation string, start time.Time) {
	if al.debug {
		duration := time.Since(start)
		al.logger.Debug("Performance",
			"operation", operation,
			"duration", duration,
		)
	}
}

// Log state transitions for debugging
func (al *AppLogger) LogStateTransition(component, from, to string) {
	if al.debug {
		al.logger.Debug("State transition",
			"component", component,
			"from", from,
			"to", to,
		)
	}
}

// Testing Helper - NewTestLogger creates a logger that writes to a buffer for testing
func NewTestLogger() (*AppLogger, *bytes.Buffer) {
	var buf bytes.Buffer

	logger := log.NewWithOptions(&buf, log.Options{
		ReportTimestamp: false, // Easier to test without timestamps
		ReportCaller:    false,
		Prefix:          "Test",
	})
	logger.SetLevel(log.DebugLevel)

	return &AppLogger{
		logger: logger,
		debug:  true,
	}, &buf
}

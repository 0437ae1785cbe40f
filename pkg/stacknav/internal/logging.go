// Package internal holds process-wide plumbing shared by the stacknav
// packages. Types and functions in this package are not part of the public API.
package internal

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logFile *os.File
	logPath string

	setupOnce sync.Once
	output    io.Writer = os.Stdout

	loggerOnce sync.Once
	logger     *slog.Logger
	levelVar   = &slog.LevelVar{}

	traceOnce   sync.Once
	traceLogger *slog.Logger
	traceLevel  = &slog.LevelVar{}
)

// SetLogPath sets the full path of the log file. Parent directories are
// created on first use. Must be called before the first GetLogger.
func SetLogPath(path string) {
	logPath = path
}

func setup() {
	setupOnce.Do(func() {
		if logPath == "" {
			return
		}
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return
		}
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			// Can't open log file, fall back to console-only
			return
		}
		logFile = f
		output = io.MultiWriter(os.Stdout, logFile)
	})
}

// GetLogger returns the application logger.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		setup()
		logger = slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: levelVar}))
	})
	return logger
}

// GetTraceLogger returns the logger used for dispatch tracing. It is kept
// apart from the application logger so tracing can be turned up on its own.
func GetTraceLogger() *slog.Logger {
	traceOnce.Do(func() {
		setup()
		traceLevel.Set(slog.LevelError)
		traceLogger = slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: traceLevel})).
			With("component", "dispatch")
	})
	return traceLogger
}

// SetLogLevel sets the minimum level of the application logger.
func SetLogLevel(level slog.Level) {
	levelVar.Set(level)
}

// SetTraceLevel sets the minimum level of the dispatch trace logger.
func SetTraceLevel(level slog.Level) {
	GetTraceLogger()
	traceLevel.Set(level)
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a level.
// Anything else yields info and false.
func ParseLevel(raw string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// CloseLogger closes the log file, if any.
func CloseLogger() {
	if logFile != nil {
		_ = logFile.Close()
	}
}

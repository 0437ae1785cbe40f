package stacknav

import (
	"log/slog"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/internal"
)

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before New to take effect.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
// Unknown levels fall back to info.
func SetRawLogLevel(level string) {
	parsed, ok := internal.ParseLevel(level)
	if !ok {
		internal.GetLogger().Warn("Unknown log level; using info", "level", level)
	}
	internal.SetLogLevel(parsed)
}

// SetTraceLevel sets the level of the dispatch trace. Every action and the
// state around it is logged at debug.
func SetTraceLevel(level slog.Level) {
	internal.SetTraceLevel(level)
}

// CloseLogger closes the log file, if any.
func CloseLogger() {
	internal.CloseLogger()
}

// Package logging provides structured logging using Go's slog package.
package logging

import (
	"log/slog"
	"os"
	"time"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger *slog.Logger
)

func init() {
	InitLogger(LevelInfo, FormatText)
}

// Level represents a log level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// Format represents a log output format.
type Format int

const (
	// FormatJSON outputs logs in JSON format.
	FormatJSON Format = iota
	// FormatText outputs logs in human-readable text format.
	FormatText
)

// InitLogger initializes the global logger with the specified level and format.
func InitLogger(level Level, format Format) {
	var slogLevel slog.Level
	switch level {
	case LevelDebug:
		slogLevel = slog.LevelDebug
	case LevelInfo:
		slogLevel = slog.LevelInfo
	case LevelWarn:
		slogLevel = slog.LevelWarn
	case LevelError:
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// GetLogger returns the global logger instance.
func GetLogger() *slog.Logger {
	return defaultLogger
}

// Helper functions for common logging patterns

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// CorpusFile logs the processing of one source file.
func CorpusFile(runID, medium, path string, conversations int, args ...any) {
	allArgs := []any{
		"run_id", runID,
		"medium", medium,
		"path", path,
		"conversations", conversations,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("corpus_file", allArgs...)
}

// FileFailed logs a per-file failure that was isolated from the batch.
func FileFailed(runID, path string, err error, args ...any) {
	allArgs := []any{
		"run_id", runID,
		"path", path,
		"error", err.Error(),
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Error("file_failed", allArgs...)
}

// ExportWritten logs a written export artifact.
func ExportWritten(runID, format, path string, args ...any) {
	allArgs := []any{
		"run_id", runID,
		"format", format,
		"path", path,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("export_written", allArgs...)
}

// RunSummary logs the end-of-run totals, including isolated failures.
func RunSummary(runID string, processed, failed int, args ...any) {
	allArgs := []any{
		"run_id", runID,
		"processed", processed,
		"failed", failed,
	}
	allArgs = append(allArgs, args...)
	if failed > 0 {
		defaultLogger.Warn("run_summary", allArgs...)
		return
	}
	defaultLogger.Info("run_summary", allArgs...)
}

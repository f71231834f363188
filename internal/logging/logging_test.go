package logging

import (
	"errors"
	"testing"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		format Format
	}{
		{"debug text", LevelDebug, FormatText},
		{"info json", LevelInfo, FormatJSON},
		{"warn text", LevelWarn, FormatText},
		{"error json", LevelError, FormatJSON},
		{"unknown level", Level(99), FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitLogger(tt.level, tt.format)
			if GetLogger() == nil {
				t.Error("GetLogger() = nil after InitLogger")
			}
		})
	}
}

func TestHelpers(t *testing.T) {
	InitLogger(LevelDebug, FormatText)

	// The helpers must not panic with arbitrary key-value pairs.
	Debug("debug message", "key", "value")
	Info("info message", "count", 3)
	Warn("warn message")
	Error("error message", "key", "value")

	CorpusFile("run-1", "email", "in/a.json", 2)
	FileFailed("run-1", "in/b.json", errors.New("bad record"))
	ExportWritten("run-1", "html", "out/a.html")
	RunSummary("run-1", 4, 0)
	RunSummary("run-1", 4, 1)
}

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gradebook/internal/config"
)

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.LoggingConfig{Level: "info", Format: "text"}, false)

	logger.Info("store initialized", "path", "data/grades.db")

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, `msg="store initialized"`)
	assert.Contains(t, out, "path=data/grades.db")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.LoggingConfig{Level: "info", Format: "json"}, false)

	logger.Info("demo finished", "run_id", "run-1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "demo finished", record["msg"])
	assert.Equal(t, "run-1", record["run_id"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.LoggingConfig{Level: "warn", Format: "text"}, false)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.LoggingConfig{Level: "error", Format: "text"}, true)

	logger.Debug("student added")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

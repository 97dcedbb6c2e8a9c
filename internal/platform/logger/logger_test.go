package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONByDefault(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn := New(Options{Output: &buf})
	defer func() { require.NoError(t, closeFn()) }()

	log.Info("hello", "activity", "Chess Club")
	log.Debug("hidden")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "Chess Club", record["activity"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log, _ := New(Options{Output: &buf, Format: FormatText, Level: "debug"})

	log.Debug("visible", "email", "a@mergington.edu")

	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "a@mergington.edu")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")
	var buf bytes.Buffer
	log, closeFn := New(Options{Output: &buf, File: path})

	log.Warn("persist failed")
	require.NoError(t, closeFn())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "persist failed")
	assert.Contains(t, buf.String(), "persist failed")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New("WARN", &buf)

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "warn", entries[0]["msg"])
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "error", entries[1]["msg"])
}

func TestLogger_FieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	logger := New("INFO", &buf)

	logger.WithFields(map[string]any{"path": "/api/carousel"}).
		WithField("status_code", 500).
		WithError(errors.New("boom")).
		Error("request failed")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "/api/carousel", entries[0]["path"])
	assert.Equal(t, float64(500), entries[0]["status_code"])
	assert.Equal(t, "boom", entries[0]["error"])
}

func TestLogger_WithFieldsDoesNotAliasCallerMap(t *testing.T) {
	var buf bytes.Buffer
	logger := New("INFO", &buf)

	base := map[string]any{"a": 1}
	logger.WithFields(base).WithField("b", 2).Info("x")

	_, leaked := base["b"]
	assert.False(t, leaked)
}

func TestParseLevel_Unknown(t *testing.T) {
	var buf bytes.Buffer
	logger := New("chatty", &buf)
	logger.Debug("hidden")
	logger.Info("shown")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
}

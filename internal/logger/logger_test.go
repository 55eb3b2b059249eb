package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, int(slog.LevelInfo), "json")

	l.Info("Cart service: item added", "item_id", "b1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Cart service: item added", entry["msg"])
	assert.Equal(t, "b1", entry["item_id"])
}

func TestNewWithWriter_TextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, int(slog.LevelWarn), "text")

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown", "key", "value")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "key=value")
}

package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Info("route optimized", "stops", 3, "error", errors.New("boom"), 42, "ignored")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "route optimized", line["message"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, float64(3), line["stops"])
	assert.Equal(t, "boom", line["error"])
}

func TestNewWritesMapFields(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Warn("cache miss", map[string]interface{}{"key": "a|b"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "a|b", line["key"])
	assert.Equal(t, "warn", line["level"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
}

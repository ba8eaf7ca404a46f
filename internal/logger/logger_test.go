package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetLogger parks the logger on a discard writer after a test rewired it.
func resetLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		InitWithWriter(io.Discard, "INFO", "text", false)
	})
}

func TestLevelFiltering(t *testing.T) {
	resetLogger(t)
	buf := new(bytes.Buffer)
	InitWithWriter(buf, "WARN", "text", false)

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestJSONFormat(t *testing.T) {
	resetLogger(t)
	buf := new(bytes.Buffer)
	InitWithWriter(buf, "INFO", "json", false)

	Info("structured message", "port", 8080, "environment", "test")

	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "structured message", entry["msg"])
	assert.Equal(t, float64(8080), entry["port"])
	assert.Equal(t, "test", entry["environment"])
}

func TestSetLevel_IgnoresInvalid(t *testing.T) {
	resetLogger(t)
	buf := new(bytes.Buffer)
	InitWithWriter(buf, "ERROR", "text", false)

	SetLevel("SHOUTING")
	Info("should be filtered")

	assert.NotContains(t, buf.String(), "should be filtered")
}

func TestWith_CarriesAttributes(t *testing.T) {
	resetLogger(t)
	buf := new(bytes.Buffer)
	InitWithWriter(buf, "INFO", "json", false)

	With("module", "lifecycle").Info("attached")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "lifecycle", entry["module"])
}

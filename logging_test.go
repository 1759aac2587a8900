package folio

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "info", "json")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("loaded", "articles", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "loaded", entry["msg"])
	assert.Equal(t, float64(3), entry["articles"])
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "WARN", "text")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("skipping invalid article", "file", "bad.md")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "file=bad.md")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewLoggerAutoIsJSONWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "", "auto")
	require.NoError(t, err)

	logger.Info("hello")
	assert.True(t, json.Valid(buf.Bytes()), "got %q", buf.String())
}

func TestNewLoggerRejectsBadInput(t *testing.T) {
	_, err := NewLogger(&bytes.Buffer{}, "loud", "text")
	assert.Error(t, err)
	_, err = NewLogger(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}

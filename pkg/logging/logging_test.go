package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, "JSON")

	logger.Debug("hidden")
	logger.Info("Account created", "account_id", 7)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Account created", line["msg"])
	assert.Equal(t, float64(7), line["account_id"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn, FormatText)

	logger.Info("hidden")
	logger.Warn("AddBill rejected", "account_id", 3)

	out := buf.String()
	assert.Contains(t, out, "AddBill rejected")
	assert.Contains(t, out, "account_id")
	assert.NotContains(t, out, "hidden")
}

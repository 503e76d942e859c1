package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dendrascience/dendra-file-organizer/internal/config"
)

func TestNew_ConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.Logging{Level: "warn", Format: "console"}, &buf)
	require.NoError(t, err)
	defer logger.Close()

	logger.Info("hidden")
	logger.Warn("shown", zap.String("file", "notes.txt"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "notes.txt")

	require.NoError(t, logger.SetLevel("debug"))
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.Logging{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Info("add file", zap.String("path", "Root/a.txt"))
	require.NoError(t, logger.Close())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "add file", entry["msg"])
	assert.Equal(t, "Root/a.txt", entry["path"])
}

func TestNew_RotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "organizer.log")
	var buf bytes.Buffer
	logger, err := New(config.Logging{
		Level:     "info",
		Format:    "console",
		File:      path,
		MaxSizeMB: 1,
	}, &buf)
	require.NoError(t, err)

	logger.Info("index grew", zap.Int("to", 20))
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"msg":"index grew"`), "file gets JSON entries: %s", data)
	assert.Contains(t, buf.String(), "index grew")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.Logging{Level: "loud"}, nil)
	assert.Error(t, err)
}

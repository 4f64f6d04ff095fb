package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/thunderpad/internal/config"
)

// captureStderr swaps the stderr hooks for the duration of a test.
func captureStderr(t *testing.T, tty bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldW, oldTTY := stderr, stderrIsTTY
	stderr = &buf
	stderrIsTTY = func() bool { return tty }
	t.Cleanup(func() {
		stderr, stderrIsTTY = oldW, oldTTY
	})
	return &buf
}

func TestNew_StderrWhenNotTerminal(t *testing.T) {
	buf := captureStderr(t, false)

	l, err := New(config.LogConfig{Level: "debug"})
	require.NoError(t, err)
	defer l.Close()

	l.Component("app").WithField("window", "w1").Debug("window opened")

	line := buf.String()
	assert.Contains(t, line, "[DEBUG] [app] window opened window=w1")
}

func TestNew_SilentOnTerminal(t *testing.T) {
	buf := captureStderr(t, true)

	l, err := New(config.LogConfig{Level: "info"})
	require.NoError(t, err)
	l.Info("hidden")

	assert.Empty(t, buf.String())
}

func TestNew_LevelFilters(t *testing.T) {
	buf := captureStderr(t, false)

	l, err := New(config.LogConfig{Level: "warn"})
	require.NoError(t, err)
	l.Info("dropped")
	l.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "[WARN] kept")
}

func TestNew_UnknownLevelFallsBack(t *testing.T) {
	buf := captureStderr(t, false)

	l, err := New(config.LogConfig{Level: "chatty"})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.Contains(t, buf.String(), "unknown log level")
}

func TestNew_JSONFile(t *testing.T) {
	captureStderr(t, true)
	path := filepath.Join(t.TempDir(), "logs", "pad.log")

	l, err := New(config.LogConfig{Level: "info", Format: "json", File: path})
	require.NoError(t, err)
	l.Component("settings").WithError(errors.New("boom")).Error("reload failed")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &rec))
	assert.Equal(t, "reload failed", rec["msg"])
	assert.Equal(t, "settings", rec["component"])
	assert.Equal(t, "boom", rec["error"])
	assert.Equal(t, "error", rec["level"])
}

func TestNew_BadFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := New(config.LogConfig{File: filepath.Join(blocker, "pad.log")})
	assert.Error(t, err)
}

func TestTextFormatter_SortsFields(t *testing.T) {
	l := logrus.New()
	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetFormatter(&TextFormatter{DisableTimestamp: true})

	l.WithFields(logrus.Fields{"b": 2, "a": 1, "component": "x"}).Info("hi")
	assert.Equal(t, "[INFO] [x] hi a=1 b=2\n", buf.String())
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Component("x").Error("nowhere")
	assert.Equal(t, io.Discard, l.Out)
	assert.NoError(t, l.Close())
}

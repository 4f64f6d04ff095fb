package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/thunderpad/internal/config"
)

func TestConfigCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config"})

	require.NoError(t, root.Execute())

	cfg, err := config.Parse(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestConfigCommand_RejectsArgs(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"config", "extra"})

	assert.Error(t, root.Execute())
}

func TestVersionFlag(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Thunderpad dev")
}

func TestBadLogLevel(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"--config", t.TempDir() + "/missing.toml", "--log-level", "loud"})

	err := root.Execute()
	var verr config.ValidationErrors
	assert.ErrorAs(t, err, &verr)
}

func TestKeyHelp(t *testing.T) {
	help := keyHelp()
	assert.Contains(t, help, "Ctrl-Q   quit")
	assert.Contains(t, help, "F8       next color scheme")
}

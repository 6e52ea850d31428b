package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("path: ~/scratch\nno_color: true\n"), 0o644))

	cfg := LoadFile(path)
	assert.Equal(t, "~/scratch", cfg.Path)
	assert.True(t, cfg.NoColor)
}

func TestLoadFileMissingDegradesToZero(t *testing.T) {
	cfg := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadFileMalformedDegradesToZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("path: [unclosed\n"), 0o644))
	assert.Equal(t, &Config{}, LoadFile(path))
}

func TestResolveRootPrecedence(t *testing.T) {
	t.Setenv("TRY_PATH", "")
	cfg := &Config{Path: "/from/config"}

	assert.Equal(t, "/from/flag", ResolveRoot("/from/flag", cfg))
	assert.Equal(t, "/from/config", ResolveRoot("", cfg))

	t.Setenv("TRY_PATH", "/from/env")
	assert.Equal(t, "/from/env", ResolveRoot("", cfg))
	assert.Equal(t, "/from/flag", ResolveRoot("/from/flag", cfg))
}

func TestResolveRootDefault(t *testing.T) {
	t.Setenv("TRY_PATH", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "src", "tries"), ResolveRoot("", &Config{}))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "x"), ExpandPath("~/x"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Equal(t, "", ExpandPath(""))
}

func TestColorsDisabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR", "")

	assert.True(t, ColorsDisabled(true, &Config{}))
	assert.True(t, ColorsDisabled(false, &Config{NoColor: true}))

	t.Setenv("NO_COLOR", "1")
	assert.True(t, ColorsDisabled(false, &Config{}))
}

func TestVersionString(t *testing.T) {
	assert.Contains(t, VersionString(), "try "+Version)
}

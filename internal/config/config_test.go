package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.toml")
	src := `
[editor]
name = "Test Rig"

[history]
depth = 16

[logging]
level = "debug"
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Test Rig", cfg.Editor.Name)
	assert.Equal(t, 16, cfg.History.Depth)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	// Untouched sections keep their defaults.
	assert.Equal(t, "assets", cfg.Paths.Assets)
	assert.Equal(t, 5*time.Minute, cfg.Editor.AutosaveInterval)
	assert.NotZero(t, cfg.Editor.StartTime)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Keel Editor", cfg.Editor.Name)
	assert.Equal(t, 512, cfg.History.Depth)
	assert.Equal(t, "console", cfg.Logging.Format)
}

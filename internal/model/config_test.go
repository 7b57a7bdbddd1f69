package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))

	require.NoError(t, err)
	assert.Equal(t, 19280, cfg.Listen.Port)
	assert.Equal(t, 5, cfg.Panel.DismissSeconds)
	assert.Equal(t, 5, cfg.Panel.MaxRows)
	assert.Equal(t, "Pop", cfg.Sound.Cue)
	assert.False(t, cfg.DesktopNotifications)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "listen:\n  port: 4567\nsound:\n  cue: Glass\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 4567, cfg.Listen.Port)
	assert.Equal(t, "Glass", cfg.Sound.Cue)
	assert.Equal(t, 5, cfg.Panel.DismissSeconds)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [unclosed"), 0o644))

	_, err := LoadConfig(path)

	assert.Error(t, err)
}

func TestResolveDataDir_Override(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := &AppConfig{DataDir: dir}

	resolved, err := cfg.ResolveDataDir()

	require.NoError(t, err)
	assert.Equal(t, dir, resolved)
	info, err := os.Stat(resolved)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

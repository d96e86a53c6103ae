package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	require.NoError(t, Load(t.TempDir()))

	assert.Equal(t, "info", GetString("logLevel"))
	assert.Equal(t, 30, GetInt("fps"))
	assert.Equal(t, 2.0, GetFloat("globe.aspectRatio"))
	assert.Equal(t, 0.25, GetFloat("input.dragSensitivity"))
	assert.Equal(t, 0.95, GetFloat("input.friction"))
	assert.Equal(t, 1, GetInt("heatmap.everyNth"))
	assert.True(t, GetBool("overlays.night"))
	assert.False(t, GetBool("overlays.heatmap"))
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg := `{
		"fps": 15,
		"globe": {"aspectRatio": 2.2},
		"overlays": {"night": false}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "firstglobe.cfg.json"), []byte(cfg), 0o644))

	require.NoError(t, Load(dir))

	assert.Equal(t, 15, GetInt("fps"))
	assert.Equal(t, 2.2, GetFloat("globe.aspectRatio"))
	assert.False(t, GetBool("overlays.night"))

	// Untouched keys keep their defaults
	assert.Equal(t, 0.95, GetFloat("input.friction"))
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "firstglobe.cfg.json"), []byte("{oops"), 0o644))

	assert.Error(t, Load(dir))
}

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, float32(60), cfg.Camera.FovDegrees)
	assert.Equal(t, float32(1), cfg.Camera.Near)
	assert.Equal(t, float32(1000), cfg.Camera.Far)
	assert.Equal(t, 2048, cfg.Light.Shadow.MapSize)
	assert.Equal(t, float32(-0.001), cfg.Light.Shadow.Bias)
	assert.Equal(t, 10, cfg.Physics.MaxSubSteps)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	src := `
[window]
width = 800
height = 600

[physics]
enabled = false
gravity = [0.0, -9.81, 0.0]
`
	cfg, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "oxy-physics", cfg.Window.Title)
	assert.False(t, cfg.Physics.Enabled)
	assert.Equal(t, [3]float32{0, -9.81, 0}, cfg.Physics.Gravity)
	assert.Equal(t, 10, cfg.Physics.MaxSubSteps)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("[camera]\nfov = 70\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeRejectsMalformedTOML(t *testing.T) {
	_, err := Decode(strings.NewReader("[window\nwidth = 1"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"fov too wide", func(c *Config) { c.Camera.FovDegrees = 180 }},
		{"near beyond far", func(c *Config) { c.Camera.Near = 2000 }},
		{"zero near", func(c *Config) { c.Camera.Near = 0 }},
		{"empty shadow map", func(c *Config) { c.Light.Shadow.MapSize = 0 }},
		{"inverted shadow depth", func(c *Config) { c.Light.Shadow.Near = 600 }},
		{"zero time step", func(c *Config) { c.Physics.FixedTimeStep = 0 }},
		{"negative sub steps", func(c *Config) { c.Physics.MaxSubSteps = -1 }},
		{"no solver iterations", func(c *Config) { c.Physics.SolverIterations = 0 }},
		{"negative workers", func(c *Config) { c.Physics.Workers = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Window.Title = "round trip"
	cfg.Physics.Workers = 3

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))

	path := filepath.Join(t.TempDir(), "demo.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeProfile(t *testing.T) {
	cfg, err := Decode(strings.NewReader("profile = true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Profile)
	assert.False(t, Default().Profile)
}

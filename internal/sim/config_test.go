package sim

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corridor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, math.Pi/3, cfg.FOV)
	assert.Equal(t, 99, cfg.StartAmmo)
	assert.InDelta(t, 0.55, cfg.meleeRadius(), 1e-12)
	assert.InDelta(t, math.Pi/3*0.5*0.4, cfg.fireHalfCone(), 1e-12)
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, "fov: 1.2\nstart_ammo: 10\nparallel_columns: true\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1.2, cfg.FOV)
	assert.Equal(t, 10, cfg.StartAmmo)
	assert.True(t, cfg.ParallelColumns)
	assert.Equal(t, 20.0, cfg.MaxDepth, "unset keys keep their defaults")
	assert.Equal(t, 0.22, cfg.BulletCooldown)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeConfig(t, "fov: [1, 2\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "ray_step: 0\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fov", func(c *Config) { c.FOV = 0 }},
		{"fov of pi", func(c *Config) { c.FOV = math.Pi }},
		{"nan depth", func(c *Config) { c.MaxDepth = math.NaN() }},
		{"zero los step", func(c *Config) { c.LOSStep = 0 }},
		{"negative speed", func(c *Config) { c.MoveSpeed = -1 }},
		{"pad fills cell", func(c *Config) { c.PlayerPad = 0.5 }},
		{"no health", func(c *Config) { c.StartHealth = 0 }},
		{"too much health", func(c *Config) { c.StartHealth = 101 }},
		{"negative ammo", func(c *Config) { c.StartAmmo = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

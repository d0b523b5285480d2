package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"), false)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 960.0, cfg.Render.CanvasWidth)
	assert.Equal(t, 540.0, cfg.Render.CanvasHeight)
	assert.Equal(t, 2, cfg.Render.AgendaThreshold)
	assert.Equal(t, "CONFIDENTIAL", cfg.Render.ConfidentialLabel)
	assert.Equal(t, 230, cfg.Assets.WhiteThreshold)
	assert.Equal(t, 4, cfg.Assets.Concurrency)
	assert.Equal(t, 20*time.Second, cfg.Assets.FetchTimeout)
	assert.Equal(t, "https://image.pollinations.ai/prompt/", cfg.Illustration.BaseURL)
	assert.Equal(t, 800, cfg.Illustration.Width)
	assert.Empty(t, cfg.Database.URL)

	opts := cfg.Render.LayoutOptions(cfg.Assets.StockVariants)
	assert.Equal(t, 4, opts.MaxGridColumns)
	assert.Equal(t, 5, opts.StockVariants)
	assert.Equal(t, "Thank You", opts.ClosingTitle)
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "server:\n  port: 9090\nrender:\n  agenda_threshold: 4\n  confidential_label: INTERNAL\nassets:\n  white_threshold: 240\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("ASSETS_WHITE_THRESHOLD", "200")

	cfg, err := LoadFrom(path, true)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Render.AgendaThreshold)
	assert.Equal(t, "INTERNAL", cfg.Render.ConfidentialLabel)
	assert.Equal(t, 200, cfg.Assets.WhiteThreshold)
	assert.Equal(t, 540.0, cfg.Render.CanvasHeight)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"), false)
	require.NoError(t, err)

	bad := *cfg
	bad.Assets.WhiteThreshold = 300
	bad.Render.MaxGridColumns = 1
	bad.Render.AgendaThreshold = -1
	err = bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "white_threshold")
	assert.Contains(t, err.Error(), "grid columns")
	assert.Contains(t, err.Error(), "agenda_threshold")

	noAgendaLimit := *cfg
	noAgendaLimit.Render.AgendaThreshold = 0
	require.NoError(t, noAgendaLimit.Validate())

	t.Setenv("ASSETS_CONCURRENCY", "0")
	_, err = LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"), false)
	require.Error(t, err)
}

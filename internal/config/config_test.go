package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, 5.0, cfg.Gmaps.RateLimit)
	assert.Equal(t, 8000, cfg.Scout.SearchRadiusM)
	assert.Equal(t, 3, cfg.Scout.MaxPlacePages)
	assert.Equal(t, 5, cfg.Scout.MaxRecommendations)
	assert.Equal(t, 10, cfg.Scout.DisplayAmenityCap)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NotEmpty(t, cfg.Reddit.UserAgent)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SCOUT_ANTHROPIC_KEY", "sk-test")
	t.Setenv("SCOUT_SERVER_PORT", "9090")
	t.Setenv("SCOUT_SCOUT_SEARCH_RADIUS_M", "4000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.Anthropic.Key)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 4000, cfg.Scout.SearchRadiusM)
}

func TestDumpRedactsSecrets(t *testing.T) {
	cfg := Config{
		Anthropic: AnthropicConfig{Key: "sk-secret", Model: "some-model"},
		Gmaps:     GmapsConfig{Key: "maps-secret"},
	}

	out, err := cfg.Dump()
	require.NoError(t, err)

	assert.NotContains(t, out, "sk-secret")
	assert.NotContains(t, out, "maps-secret")
	assert.Contains(t, out, "[redacted]")
	assert.Contains(t, out, "some-model")
}

func TestDumpLeavesEmptyKeysAlone(t *testing.T) {
	out, err := Config{}.Dump()
	require.NoError(t, err)
	assert.False(t, strings.Contains(out, "[redacted]"))
}

func TestInitLoggerRejectsBadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "shouty", Format: "json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
}

func TestInitLoggerFormats(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))
}

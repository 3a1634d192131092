package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "3001", cfg.Port)
	require.Equal(t, "development", cfg.Env)
	require.True(t, cfg.IsDevelopment())
	require.Equal(t, 100, cfg.GeneralLimit)
	require.Equal(t, 15*time.Minute, cfg.GeneralWindow)
	require.Equal(t, 30, cfg.APILimit)
	require.Equal(t, time.Minute, cfg.APIWindow)
	require.Equal(t, 10, cfg.ContentLimit)
	require.Equal(t, time.Minute, cfg.ContentWindow)
	require.Equal(t, 60*time.Second, cfg.UpstreamTimeout)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("RATE_LIMIT_CONTENT_MAX", "5")
	t.Setenv("RATE_LIMIT_CONTENT_WINDOW_SECONDS", "30")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.Port)
	require.False(t, cfg.IsDevelopment())
	require.Equal(t, 5, cfg.ContentLimit)
	require.Equal(t, 30*time.Second, cfg.ContentWindow)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_API_MAX", "not_a_number")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 30, cfg.APILimit)
}

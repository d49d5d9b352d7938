package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SWEEP_INTERVAL", "")
	t.Setenv("CLIENT_URL", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg := Load()
	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, time.Hour, cfg.SweepInterval)
	require.Equal(t, defaultOrigins, cfg.AllowedOrigins)
}

func TestParseInterval(t *testing.T) {
	require.Equal(t, 30*time.Minute, parseInterval("30m"))
	require.Equal(t, time.Hour, parseInterval(""))
	require.Equal(t, time.Hour, parseInterval("nonsense"))
	require.Equal(t, time.Hour, parseInterval("-5m"))
}

func TestParseAllowedOrigins(t *testing.T) {
	t.Setenv("CLIENT_URL", "https://app.example.com")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,,")

	origins := parseAllowedOrigins()
	require.Contains(t, origins, "http://localhost:3000")
	require.Contains(t, origins, "https://app.example.com")
	require.Contains(t, origins, "https://a.example.com")
	require.Contains(t, origins, "https://b.example.com")
	require.Len(t, origins, 5)
}

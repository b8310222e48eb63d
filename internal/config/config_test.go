package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONSOLE_API_BASE_URL", "http://api.test")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, "http://api.test", cfg.APIBaseURL)
	require.Equal(t, 10*time.Second, cfg.APITimeout)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Empty(t, cfg.RedisAddr)
	require.Equal(t, 100, cfg.RateLimitRequests)
}

func TestLoadRequiresAPIBaseURL(t *testing.T) {
	// t.Setenv records the original value for restoration; the variable is
	// then removed so the required check actually trips.
	t.Setenv("CONSOLE_API_BASE_URL", "placeholder")
	os.Unsetenv("CONSOLE_API_BASE_URL")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CONSOLE_API_BASE_URL", "http://api.test")
	t.Setenv("CONSOLE_LISTEN_ADDR", ":9090")
	t.Setenv("CONSOLE_REDIS_ADDR", "localhost:6379")
	t.Setenv("CONSOLE_SESSION_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.ListenAddr)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

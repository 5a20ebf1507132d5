package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, "127.0.0.1:8000", cfg.Addr())
	assert.Equal(t, "/mcp", cfg.Path)
	assert.Equal(t, "en", cfg.Tourism.DefaultLanguage)
	assert.Equal(t, 86400, cfg.Tourism.CacheTTLSeconds)
	assert.Equal(t, 5, cfg.Tourism.RateLimitCalls)
	assert.Equal(t, 1, cfg.Tourism.RateLimitPeriodSeconds)
	assert.Equal(t, 10, cfg.Tourism.ConcurrencyLimit)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvTourismAPIKey, "env-key")
	t.Setenv(EnvDefaultLanguage, "ko")
	t.Setenv(EnvCacheTTL, "3600")
	t.Setenv(EnvRateLimitCalls, "9")
	t.Setenv(EnvConcurrencyLimit, "4")
	t.Setenv(EnvTransport, "streamable-http")
	t.Setenv(EnvPort, "9000")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Tourism.APIKey)
	assert.Equal(t, "ko", cfg.Tourism.DefaultLanguage)
	assert.Equal(t, 3600, cfg.Tourism.CacheTTLSeconds)
	assert.Equal(t, 9, cfg.Tourism.RateLimitCalls)
	assert.Equal(t, 4, cfg.Tourism.ConcurrencyLimit)
	assert.Equal(t, TransportStreamable, cfg.Transport)
	assert.Equal(t, 9000, cfg.Port)
}

func TestYAMLFileUnderEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
transport: sse
port: 8500
tourism:
  api_key: file-key
  default_language: jp
  cache_ttl: 600
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	// Env still beats the file.
	t.Setenv(EnvDefaultLanguage, "ko")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, TransportSSE, cfg.Transport)
	assert.Equal(t, 8500, cfg.Port)
	assert.Equal(t, "file-key", cfg.Tourism.APIKey)
	assert.Equal(t, "ko", cfg.Tourism.DefaultLanguage)
	assert.Equal(t, 600, cfg.Tourism.CacheTTLSeconds)
}

func TestInvalidTransportRejected(t *testing.T) {
	t.Setenv(EnvTransport, "carrier-pigeon")
	_, err := Load("")
	require.Error(t, err)
}

func TestMissingFileRejected(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestClientConfigConversion(t *testing.T) {
	t.Setenv(EnvTourismAPIKey, "k")
	t.Setenv(EnvCacheTTL, "120")
	t.Setenv(EnvRateLimitPeriod, "2")

	cfg, err := Load("")
	require.NoError(t, err)

	cc := cfg.ClientConfig()
	assert.Equal(t, "k", cc.APIKey)
	assert.Equal(t, 2*time.Minute, cc.CacheTTL)
	assert.Equal(t, 2*time.Second, cc.RateLimitPeriod)
	assert.EqualValues(t, 10, cc.ConcurrencyLimit)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCookieSecureOnlyInProd(t *testing.T) {
	assert.True(t, Config{Env: "prod"}.CookieSecure())
	assert.False(t, Config{Env: "dev"}.CookieSecure())
	assert.False(t, Config{Env: "test"}.CookieSecure())
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.Methods["GET"])
	assert.False(t, cfg.Methods["POST"])
	assert.Equal(t, 30*time.Second, cfg.TTL)
	assert.Equal(t, "cache", cfg.Prefix)
}

func TestLoadCacheConfigOverrides(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "2m")

	cfg := LoadCacheConfig()
	assert.False(t, cfg.Enabled)
	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
	assert.Equal(t, 2*time.Minute, cfg.TTL)
}

func TestParseDurFallback(t *testing.T) {
	assert.Equal(t, time.Second, parseDur("nonsense"))
}

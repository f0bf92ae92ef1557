package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearSBOMGraderEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SBOMGRADER_CACHE_ENABLED", "SBOMGRADER_CACHE_MAX_SIZE",
		"SBOMGRADER_CACHE_TTL", "SBOMGRADER_CACHE_SWEEP_INTERVAL",
		"SBOMGRADER_MAX_INLINE_SIZE", "SBOMGRADER_DEFAULT_COOKBOOK",
		"SBOMGRADER_DEFAULT_PASSING",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearSBOMGraderEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Equal(t, "default", c.DefaultCookbook)
	assert.Equal(t, "C", c.DefaultPassing)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearSBOMGraderEnv(t)
	t.Setenv("SBOMGRADER_CACHE_ENABLED", "false")
	t.Setenv("SBOMGRADER_CACHE_MAX_SIZE", "50")
	t.Setenv("SBOMGRADER_CACHE_TTL", "30m")
	t.Setenv("SBOMGRADER_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("SBOMGRADER_MAX_INLINE_SIZE", "5242880")
	t.Setenv("SBOMGRADER_DEFAULT_COOKBOOK", "strict")
	t.Setenv("SBOMGRADER_DEFAULT_PASSING", "B")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, int64(5242880), c.MaxInlineSize)
	assert.Equal(t, "strict", c.DefaultCookbook)
	assert.Equal(t, "B", c.DefaultPassing)
}

func TestLoadConfig_InvalidValues_UseDefaults(t *testing.T) {
	clearSBOMGraderEnv(t)
	t.Setenv("SBOMGRADER_CACHE_MAX_SIZE", "banana")
	t.Setenv("SBOMGRADER_CACHE_TTL", "not-a-duration")
	t.Setenv("SBOMGRADER_CACHE_ENABLED", "maybe")
	t.Setenv("SBOMGRADER_MAX_INLINE_SIZE", "abc")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
}

func TestLoadConfig_PartialOverrides(t *testing.T) {
	clearSBOMGraderEnv(t)
	t.Setenv("SBOMGRADER_DEFAULT_PASSING", "A")

	c := loadConfig()

	assert.Equal(t, "A", c.DefaultPassing)
	assert.Equal(t, "default", c.DefaultCookbook)
	assert.True(t, c.CacheEnabled)
}

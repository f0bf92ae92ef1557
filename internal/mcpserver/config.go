package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults. Loaded once at
// startup from environment variables via loadConfig().
type serverConfig struct {
	CacheEnabled       bool
	CacheMaxSize       int
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	MaxInlineSize   int64
	DefaultCookbook string
	DefaultPassing  string
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from SBOMGRADER_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("SBOMGRADER_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("SBOMGRADER_CACHE_MAX_SIZE", 10),
		CacheTTL:           envDuration("SBOMGRADER_CACHE_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("SBOMGRADER_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxInlineSize:      envInt64("SBOMGRADER_MAX_INLINE_SIZE", 10*1024*1024),
		DefaultCookbook:    envString("SBOMGRADER_DEFAULT_COOKBOOK", "default"),
		DefaultPassing:     envString("SBOMGRADER_DEFAULT_PASSING", "C"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

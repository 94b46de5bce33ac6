package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the routing service hosts.
type Config struct {
	Port        string
	CatalogPath string
	DatabaseURL string
	RedisAddr   string
	CacheTTL    time.Duration
	LogLevel    string

	EngineParallelism  int
	PriorityZone       int
	OwnedVendorMarkers []string
}

// LoadDotEnv loads .env into the environment when present.
// It reports whether a file was loaded.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load reads the configuration from environment variables with defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:        Get("PORT", "8080"),
		CatalogPath: Get("CATALOG_PATH", "data/catalog.yaml"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisAddr:   strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		LogLevel:    Get("LOG_LEVEL", "info"),
	}
	cfg.OwnedVendorMarkers = splitList(Get("OWNED_VENDOR_MARKERS", "owned,in-house"))

	var err error
	if cfg.CacheTTL, err = time.ParseDuration(Get("CACHE_TTL", "10m")); err != nil {
		return Config{}, fmt.Errorf("load config: CACHE_TTL: %w", err)
	}
	if cfg.EngineParallelism, err = strconv.Atoi(Get("ENGINE_PARALLELISM", "4")); err != nil {
		return Config{}, fmt.Errorf("load config: ENGINE_PARALLELISM: %w", err)
	}
	if cfg.PriorityZone, err = strconv.Atoi(Get("PRIORITY_ZONE", "1")); err != nil {
		return Config{}, fmt.Errorf("load config: PRIORITY_ZONE: %w", err)
	}

	return cfg, nil
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

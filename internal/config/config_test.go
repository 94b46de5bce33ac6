package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "CATALOG_PATH", "DATABASE_URL", "REDIS_ADDR", "CACHE_TTL",
		"LOG_LEVEL", "ENGINE_PARALLELISM", "PRIORITY_ZONE", "OWNED_VENDOR_MARKERS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 4, cfg.EngineParallelism)
	assert.Equal(t, 1, cfg.PriorityZone)
	assert.Equal(t, []string{"owned", "in-house"}, cfg.OwnedVendorMarkers)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("PRIORITY_ZONE", "2")
	t.Setenv("OWNED_VENDOR_MARKERS", " acme , ,own-fleet")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 2, cfg.PriorityZone)
	assert.Equal(t, []string{"acme", "own-fleet"}, cfg.OwnedVendorMarkers)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("ENGINE_PARALLELISM", "many")

	_, err := Load()
	assert.ErrorContains(t, err, "ENGINE_PARALLELISM")
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, BackendMemory, cfg.FavoritesBackend)
	assert.Equal(t, ImageStoreEmbedded, cfg.ImageStore)
	assert.True(t, cfg.SeedDemoData)
	assert.Equal(t, 30*time.Second, cfg.ServerTimeout)
	assert.Equal(t, time.Hour, cfg.PurchaseSessionTTL)
	assert.Equal(t, int64(10<<20), cfg.MaxImageBytes())
	assert.Empty(t, cfg.ElasticsearchURL)
	assert.Empty(t, cfg.NatsURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("SEED_DEMO_DATA", "false")
	t.Setenv("PURCHASE_SESSION_TTL_MINUTES", "5")
	t.Setenv("DB_NAME", "market_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.False(t, cfg.SeedDemoData)
	assert.Equal(t, 5*time.Minute, cfg.PurchaseSessionTTL)
	assert.Contains(t, cfg.DSN(), "dbname=market_test")
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "cassandra")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_BACKEND")
}

func TestValidate_FirebaseRequiresKeyFile(t *testing.T) {
	cfg := &Config{
		StoreBackend:                  BackendMemory,
		FavoritesBackend:              BackendMemory,
		ImageStore:                    ImageStoreFirebase,
		FirebaseServiceAccountKeyPath: "/does/not/exist.json",
		FirebaseStorageBucket:         "bucket",
		MaxImageSizeMB:                1,
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_DurationsFromEnv(t *testing.T) {
	t.Setenv("SERVER_TIMEOUT_SECONDS", "5")
	t.Setenv("DB_CONN_MAX_LIFETIME_MINUTES", "5")
	t.Setenv("PURCHASE_SESSION_TTL_MINUTES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.ServerTimeout)
	assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
	assert.Equal(t, 5*time.Minute, cfg.PurchaseSessionTTL)
}

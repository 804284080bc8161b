package entrypoint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/dogspotter/internal/config"
	"github.com/mrlokans/dogspotter/internal/database/breeds"
	"github.com/mrlokans/dogspotter/internal/dataset"
	"github.com/mrlokans/dogspotter/internal/images"
	"github.com/mrlokans/dogspotter/internal/metrics"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.NewConfig()
	cfg.Database.Path = filepath.Join(dir, "entry.db")
	cfg.Dataset.Path = ""
	cfg.Images.CacheDir = filepath.Join(dir, "images")
	return cfg
}

func TestSyncCatalog_EmbeddedDataset(t *testing.T) {
	cfg := testConfig(t)
	m, err := metrics.New()
	require.NoError(t, err)

	db, result, err := SyncCatalog(context.Background(), cfg, m)
	require.NoError(t, err)
	defer db.Close()

	want, err := dataset.Load("")
	require.NoError(t, err)
	assert.Equal(t, len(want), result.Upserted)
	assert.Equal(t, 0, result.Removed)
	assert.Equal(t, float64(len(want)), testutil.ToFloat64(m.BreedsSynced))

	count, err := breeds.NewRepository(db).CountBreeds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(len(want)), count)
}

func TestSyncCatalog_MalformedDatasetFails(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dataset.Path = filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(cfg.Dataset.Path, []byte(`[{"name": "No Id"}]`), 0o644))

	db, _, err := SyncCatalog(context.Background(), cfg, nil)
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestSyncCatalog_UnwritableDatabaseFails(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Path = filepath.Join(t.TempDir(), "missing", "dir", "entry.db")

	_, _, err := SyncCatalog(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestNewImageResolver_UsesCacheDir(t *testing.T) {
	cfg := testConfig(t)

	resolver := NewImageResolver(cfg, "1.0.0", nil)

	assert.Equal(t, cfg.Images.CacheDir, resolver.CacheDir())
	assert.Equal(t, filepath.Join(cfg.Images.CacheDir, "akita_1.jpg"), resolver.CachePath("Akita"))

	require.NoError(t, os.MkdirAll(cfg.Images.CacheDir, 0o755))
	require.NoError(t, os.WriteFile(resolver.CachePath("Akita"), []byte("x"), 0o644))
	assert.Equal(t, []string{resolver.CachePath("Akita")}, resolver.Resolve(context.Background(), "Akita"))
	assert.Equal(t, "akita", images.SanitizeKey("Akita"))
}

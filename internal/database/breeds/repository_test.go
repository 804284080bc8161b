package breeds

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/dogspotter/internal/database"
	"github.com/mrlokans/dogspotter/internal/dataset"
	"github.com/mrlokans/dogspotter/internal/entities"
)

func setupTestDB(t *testing.T, breeds []entities.Breed) (*database.Database, *Repository) {
	t.Helper()
	db := database.NewDatabase(filepath.Join(t.TempDir(), "breeds.db"))
	t.Cleanup(func() { db.Close() })

	_, err := db.Initialize(context.Background(), breeds)
	require.NoError(t, err)

	return db, NewRepository(db)
}

func namedBreeds(names ...string) []entities.Breed {
	out := make([]entities.Breed, len(names))
	for i, name := range names {
		out[i] = entities.Breed{
			ID:       string(rune('a' + i)),
			Name:     name,
			AltNames: entities.StringList{name + " Dog"},
			Size:     entities.SizeMedium,
		}
	}
	return out
}

func TestRepository_ListBreeds_OrderedByName(t *testing.T) {
	_, repo := setupTestDB(t, namedBreeds("Whippet", "Akita", "Pug", "Beagle"))

	got, err := repo.ListBreeds(context.Background())
	require.NoError(t, err)

	names := make([]string, len(got))
	for i, b := range got {
		names[i] = b.Name
	}
	assert.Equal(t, []string{"Akita", "Beagle", "Pug", "Whippet"}, names)
	assert.Equal(t, entities.StringList{"Akita Dog"}, got[0].AltNames)
}

func TestRepository_ListBreeds_EmbeddedDatasetSorted(t *testing.T) {
	all, err := dataset.Load("")
	require.NoError(t, err)
	_, repo := setupTestDB(t, all)

	got, err := repo.ListBreeds(context.Background())
	require.NoError(t, err)
	require.Len(t, got, len(all))

	assert.True(t, sort.SliceIsSorted(got, func(i, j int) bool {
		return strings.Compare(got[i].Name, got[j].Name) < 0
	}))
}

func TestRepository_ListBreeds_Empty(t *testing.T) {
	_, repo := setupTestDB(t, nil)

	got, err := repo.ListBreeds(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRepository_GetBreed(t *testing.T) {
	_, repo := setupTestDB(t, namedBreeds("Akita"))

	t.Run("present", func(t *testing.T) {
		got, err := repo.GetBreed(context.Background(), "a")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Akita", got.Name)
	})

	t.Run("absent is nil without error", func(t *testing.T) {
		got, err := repo.GetBreed(context.Background(), "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestRepository_CountBreeds(t *testing.T) {
	_, repo := setupTestDB(t, namedBreeds("A", "B", "C"))

	count, err := repo.CountBreeds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

type countingReader struct {
	Reader
	lists, gets, counts int
}

func (c *countingReader) ListBreeds(ctx context.Context) ([]entities.Breed, error) {
	c.lists++
	return c.Reader.ListBreeds(ctx)
}

func (c *countingReader) GetBreed(ctx context.Context, id string) (*entities.Breed, error) {
	c.gets++
	return c.Reader.GetBreed(ctx, id)
}

func (c *countingReader) CountBreeds(ctx context.Context) (int64, error) {
	c.counts++
	return c.Reader.CountBreeds(ctx)
}

func TestCachedRepository(t *testing.T) {
	db, repo := setupTestDB(t, namedBreeds("Akita", "Beagle"))
	inner := &countingReader{Reader: repo}
	cached := NewCachedRepository(inner, time.Minute)
	ctx := context.Background()

	t.Run("list served from cache", func(t *testing.T) {
		first, err := cached.ListBreeds(ctx)
		require.NoError(t, err)
		first[0].Name = "mutated"

		second, err := cached.ListBreeds(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Akita", second[0].Name)
		assert.Equal(t, 1, inner.lists)
	})

	t.Run("absent breed is not cached", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			got, err := cached.GetBreed(ctx, "missing")
			require.NoError(t, err)
			assert.Nil(t, got)
		}
		assert.Equal(t, 2, inner.gets)
	})

	t.Run("present breed cached", func(t *testing.T) {
		before := inner.gets
		for i := 0; i < 3; i++ {
			got, err := cached.GetBreed(ctx, "b")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "Beagle", got.Name)
		}
		assert.Equal(t, before+1, inner.gets)
	})

	t.Run("flush picks up a re-sync", func(t *testing.T) {
		count, err := cached.CountBreeds(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		_, err = db.Initialize(ctx, namedBreeds("Corgi"))
		require.NoError(t, err)

		count, err = cached.CountBreeds(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count, "stale until flushed")

		cached.Flush()
		assert.Zero(t, cached.ItemCount())

		count, err = cached.CountBreeds(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

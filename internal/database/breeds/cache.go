package breeds

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/mrlokans/dogspotter/internal/entities"
)

const (
	listKey  = "breeds:all"
	countKey = "breeds:count"
)

// Reader is the read surface shared by Repository and CachedRepository.
type Reader interface {
	ListBreeds(ctx context.Context) ([]entities.Breed, error)
	GetBreed(ctx context.Context, id string) (*entities.Breed, error)
	CountBreeds(ctx context.Context) (int64, error)
}

// CachedRepository keeps catalog reads in memory. The catalog only changes on
// sync, so callers that re-sync must call Flush.
type CachedRepository struct {
	next  Reader
	cache *cache.Cache
}

// NewCachedRepository wraps next with an in-memory cache. A zero ttl disables
// expiry.
func NewCachedRepository(next Reader, ttl time.Duration) *CachedRepository {
	expiry := ttl
	if expiry <= 0 {
		expiry = cache.NoExpiration
	}
	return &CachedRepository{
		next:  next,
		cache: cache.New(expiry, ttl*2),
	}
}

// ListBreeds returns a copy of the cached catalog, loading it on a miss.
func (c *CachedRepository) ListBreeds(ctx context.Context) ([]entities.Breed, error) {
	if cached, found := c.cache.Get(listKey); found {
		return append([]entities.Breed(nil), cached.([]entities.Breed)...), nil
	}

	breeds, err := c.next.ListBreeds(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(listKey, breeds, cache.DefaultExpiration)
	return append([]entities.Breed(nil), breeds...), nil
}

// GetBreed looks up a single breed. Absent breeds are not cached.
func (c *CachedRepository) GetBreed(ctx context.Context, id string) (*entities.Breed, error) {
	key := "breed:" + id
	if cached, found := c.cache.Get(key); found {
		b := cached.(entities.Breed)
		return &b, nil
	}

	breed, err := c.next.GetBreed(ctx, id)
	if err != nil || breed == nil {
		return breed, err
	}
	c.cache.Set(key, *breed, cache.DefaultExpiration)
	return breed, nil
}

func (c *CachedRepository) CountBreeds(ctx context.Context) (int64, error) {
	if cached, found := c.cache.Get(countKey); found {
		return cached.(int64), nil
	}

	count, err := c.next.CountBreeds(ctx)
	if err != nil {
		return 0, err
	}
	c.cache.Set(countKey, count, cache.DefaultExpiration)
	return count, nil
}

// Flush drops every cached entry.
func (c *CachedRepository) Flush() {
	c.cache.Flush()
}

// ItemCount reports the number of cached entries.
func (c *CachedRepository) ItemCount() int {
	return c.cache.ItemCount()
}

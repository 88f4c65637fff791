package infrastructure

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scoutWorkspace/internal/modules/workspace/domain"
)

type fakeRedis struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	value, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(value), nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.data[key] = value.([]byte)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

type countingFetcher struct {
	calls   int
	players []domain.Player
	err     error
}

func (c *countingFetcher) Search(context.Context, string, domain.CatalogQuery) (domain.CatalogPage, error) {
	c.calls++
	if c.err != nil {
		return domain.CatalogPage{}, c.err
	}
	return domain.NewCatalogPage(c.players), nil
}

func TestRedisPageCacheServesRepeatedPages(t *testing.T) {
	t.Parallel()

	backend := newFakeRedis()
	next := &countingFetcher{players: []domain.Player{{ID: "1", Name: "Xavi Simons", Stats: domain.Stats{Pace: 84}}}}
	cache := NewRedisPageCache(next, backend, time.Minute)
	query := domain.NewCatalogQuery(domain.Criteria{Club: "Leipzig"}, domain.NewCursor(20))
	ctx := context.Background()

	first, err := cache.Search(ctx, "tok", query)
	require.NoError(t, err)
	second, err := cache.Search(ctx, "tok", query)
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, first, second)

	key := catalogCachePrefix + "filtered?club=Leipzig&limit=20&offset=0"
	assert.Contains(t, backend.data, key)
	assert.Equal(t, time.Minute, backend.ttls[key])

	other := domain.NewCatalogQuery(domain.Criteria{Club: "Leipzig"}, domain.NewCursor(20).Advance(20))
	_, err = cache.Search(ctx, "tok", other)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestRedisPageCacheBypassesBackendFailures(t *testing.T) {
	t.Parallel()

	backend := newFakeRedis()
	backend.getErr = errors.New("connection refused")
	backend.setErr = errors.New("connection refused")
	next := &countingFetcher{players: []domain.Player{{ID: "1"}}}
	cache := NewRedisPageCache(next, backend, 0)
	query := domain.NewCatalogQuery(domain.Criteria{}, domain.NewCursor(20))

	for i := 0; i < 2; i++ {
		page, err := cache.Search(context.Background(), "tok", query)
		require.NoError(t, err)
		assert.Len(t, page.Players, 1)
	}
	assert.Equal(t, 2, next.calls)
}

func TestRedisPageCacheDoesNotStoreFailures(t *testing.T) {
	t.Parallel()

	backend := newFakeRedis()
	boom := errors.New("timeout")
	cache := NewRedisPageCache(&countingFetcher{err: boom}, backend, time.Second)

	_, err := cache.Search(context.Background(), "tok", domain.NewCatalogQuery(domain.Criteria{}, domain.NewCursor(20)))
	require.ErrorIs(t, err, boom)
	assert.Empty(t, backend.data)
}

func TestRedisPageCacheRefetchesCorruptEntries(t *testing.T) {
	t.Parallel()

	backend := newFakeRedis()
	query := domain.NewCatalogQuery(domain.Criteria{}, domain.NewCursor(20))
	backend.data[catalogCachePrefix+query.CanonicalKey()] = []byte("{not json")
	next := &countingFetcher{players: []domain.Player{{ID: "9"}}}
	cache := NewRedisPageCache(next, backend, time.Second)

	page, err := cache.Search(context.Background(), "tok", query)
	require.NoError(t, err)
	assert.Equal(t, "9", page.Players[0].ID)
	assert.Equal(t, 1, next.calls)
}

func TestRedisPageCacheKeepsReturnedRowCount(t *testing.T) {
	t.Parallel()

	backend := newFakeRedis()
	query := domain.NewCatalogQuery(domain.Criteria{}, domain.NewCursor(20))
	next := &countingFetcher{players: []domain.Player{{ID: "3"}}}
	cache := NewRedisPageCache(next, backend, time.Minute)

	backend.data[catalogCachePrefix+query.CanonicalKey()] = []byte(`{"players":[{"id":"3"}],"returned":20}`)
	page, err := cache.Search(context.Background(), "tok", query)
	require.NoError(t, err)
	assert.Equal(t, 0, next.calls)
	assert.Equal(t, 20, page.Returned)
	assert.Len(t, page.Players, 1)
}

package infrastructure

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"scoutWorkspace/internal/modules/workspace/application/port"
	"scoutWorkspace/internal/modules/workspace/domain"
)

const catalogCachePrefix = "scout:catalog:"

// redisBackend is the subset of redis.Cmdable the page cache needs.
type redisBackend interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisPageCache decorates a CatalogFetcher with a shared page cache. Cache
// failures are logged and bypassed; they never fail a search.
type RedisPageCache struct {
	next    port.CatalogFetcher
	backend redisBackend
	ttl     time.Duration
}

var _ port.CatalogFetcher = (*RedisPageCache)(nil)

func NewRedisPageCache(next port.CatalogFetcher, backend redisBackend, ttl time.Duration) *RedisPageCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisPageCache{next: next, backend: backend, ttl: ttl}
}

// NewRedisClient opens the client used by the page cache.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (c *RedisPageCache) Search(ctx context.Context, token string, query domain.CatalogQuery) (domain.CatalogPage, error) {
	key := catalogCachePrefix + query.CanonicalKey()

	cached, err := c.backend.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var page domain.CatalogPage
		decodeErr := sonic.Unmarshal(cached, &page)
		if decodeErr == nil {
			cacheLookups.WithLabelValues("hit").Inc()
			return page, nil
		}
		slog.Warn("catalog cache decode failed", slog.String("key", key), slog.Any("error", decodeErr))
	case errors.Is(err, redis.Nil):
		cacheLookups.WithLabelValues("miss").Inc()
	default:
		cacheLookups.WithLabelValues("error").Inc()
		slog.Warn("catalog cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	page, err := c.next.Search(ctx, token, query)
	if err != nil {
		return domain.CatalogPage{}, err
	}

	encoded, err := sonic.Marshal(page)
	if err != nil {
		slog.Warn("catalog cache encode failed", slog.String("key", key), slog.Any("error", err))
		return page, nil
	}
	if err := c.backend.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		slog.Warn("catalog cache write failed", slog.String("key", key), slog.Any("error", err))
	}
	return page, nil
}

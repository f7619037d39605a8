package querycache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// FetchFunc loads the authoritative value of a key from the backend.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Fetch returns the cached value of key while it is fresh and otherwise runs
// fetch and stores its result. When fetch fails and a value of the right type
// is cached, that value is returned together with an error wrapping both
// ErrServedStale and the cause; see IsServedStale. A fetch cancelled by Cancel
// never overwrites the cache.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fetch FetchFunc[T]) (T, error) {
	var zero T
	if value, ok := c.fresh(key); ok {
		if typed, ok := value.(T); ok {
			c.metrics.hit(key.Group)
			return typed, nil
		}
	}
	c.metrics.miss(key.Group)

	fetchCtx, id, epoch := c.begin(ctx, key)
	value, err := fetch(fetchCtx)
	if err != nil {
		if _, current := c.finish(key, id, epoch, nil, false); !current {
			slog.Debug("querycache fetch cancelled", slog.String("key", key.String()), slog.Any("error", err))
			if cached, ok := cachedAs[T](c, key); ok {
				return cached, nil
			}
			return zero, errors.Join(ErrFetchCancelled, err)
		}
		c.metrics.fetchFailed(key.Group)
		if cached, ok := cachedAs[T](c, key); ok && ctx.Err() == nil {
			c.metrics.servedStale(key.Group)
			slog.Warn("querycache serving cached value after fetch error", slog.String("key", key.String()), slog.Any("error", err))
			return cached, fmt.Errorf("%w: %w", ErrServedStale, err)
		}
		return zero, err
	}

	if _, committed := c.finish(key, id, epoch, value, true); !committed {
		slog.Debug("querycache discarded cancelled fetch result", slog.String("key", key.String()))
		if cached, ok := cachedAs[T](c, key); ok {
			return cached, nil
		}
	}
	return value, nil
}

// Refetch marks key stale and fetches it again.
func Refetch[T any](ctx context.Context, c *Cache, key Key, fetch FetchFunc[T]) (T, error) {
	c.markStale(key)
	return Fetch(ctx, c, key, fetch)
}

// IsServedStale reports whether err came with a usable cached value.
func IsServedStale(err error) bool {
	return errors.Is(err, ErrServedStale)
}

// Cached returns the value of key when present and of type T.
func Cached[T any](c *Cache, key Key) (T, bool) {
	return cachedAs[T](c, key)
}

func cachedAs[T any](c *Cache, key Key) (T, bool) {
	var zero T
	value, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := value.(T)
	return typed, ok
}

func (c *Cache) markStale(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.stale = true
	}
}

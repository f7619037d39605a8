package querycache

import (
	"context"
	"log/slog"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// SendFunc performs one backend mutation.
type SendFunc[R any] func(ctx context.Context) (R, error)

// Update describes an optimistic change applied to every cached value of
// Group holding a T. Apply must not modify its argument in place; it returns
// the new value and whether anything changed.
type Update[T any] struct {
	Group string
	Apply func(current T) (T, bool)
}

// Mutate sends a mutation and, once the backend accepted it, invalidates the
// given groups. A failed mutation leaves the cache untouched. There is no retry.
func Mutate[R any](ctx context.Context, c *Cache, group string, send SendFunc[R], invalidates ...string) (R, error) {
	result, err := send(ctx)
	if err != nil {
		c.metrics.mutation(group, outcomeFailure)
		return result, err
	}
	c.metrics.mutation(group, outcomeSuccess)
	c.Invalidate(invalidates...)
	return result, nil
}

// Optimistic applies update to the cache before sending the mutation. In-flight
// fetches of the group are cancelled first so they cannot overwrite the
// optimistic value. When send fails every touched key is restored exactly as
// it was; on success the given groups are invalidated.
func Optimistic[T, R any](ctx context.Context, c *Cache, update Update[T], send SendFunc[R], invalidates ...string) (R, error) {
	c.Cancel(update.Group)

	snapshots := make([]Snapshot, 0)
	if update.Apply != nil {
		for _, key := range c.Keys(update.Group) {
			snap := c.Snapshot(key)
			current, ok := snap.Value().(T)
			if !snap.Present() || !ok {
				continue
			}
			next, changed := update.Apply(current)
			if !changed {
				continue
			}
			snapshots = append(snapshots, snap)
			c.Set(key, next)
		}
	}

	result, err := send(ctx)
	if err != nil {
		c.metrics.mutation(update.Group, outcomeFailure)
		for _, snap := range snapshots {
			c.Restore(snap)
		}
		if len(snapshots) > 0 {
			c.metrics.rollback(update.Group)
			slog.Info("optimistic update reverted", slog.String("group", update.Group), slog.Int("keys", len(snapshots)), slog.Any("error", err))
		}
		return result, err
	}

	c.metrics.mutation(update.Group, outcomeSuccess)
	c.Invalidate(invalidates...)
	return result, nil
}

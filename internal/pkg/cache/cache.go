// Package cache is a JSON read-through cache on Redis with singleflight loading.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

type Cache struct {
	rdb redis.Cmdable
	ttl time.Duration
	sf  singleflight.Group
}

// New returns a cache over rdb. A nil rdb disables storage; loads still coalesce.
func New(rdb redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// NewRedisClient connects to addr and pings it.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// GetOrLoad returns the cached value for key, or calls load once across concurrent
// callers and stores its result. Redis failures degrade to calling load.
func GetOrLoad[T any](ctx context.Context, c *Cache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if c.rdb != nil {
		cached, err := c.rdb.Get(ctx, key).Result()
		switch {
		case err == nil:
			var v T
			if json.Unmarshal([]byte(cached), &v) == nil {
				return v, nil
			}
		case !errors.Is(err, redis.Nil):
			slog.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		}
	}

	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if c.rdb != nil {
			if data, err := json.Marshal(loaded); err == nil {
				if err := c.rdb.Set(ctx, key, string(data), c.ttl).Err(); err != nil {
					slog.WarnContext(ctx, "cache write failed", "key", key, "error", err)
				}
			}
		}
		return loaded, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}

// Invalidate deletes keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if c.rdb == nil || len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate %v: %w", keys, err)
	}
	return nil
}

func TimesheetKey(employeeID, month string) string {
	return fmt.Sprintf("timesheet:%s:%s", employeeID, month)
}

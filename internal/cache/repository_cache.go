package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shipment-tracking/internal/repository"
)

const (
	notFoundMarker = "notfound"
	notFoundTTL    = time.Minute
)

// CachedRepository is a read-through redis cache in front of a repository.
//
// Keys carry a per-table generation number. A write bumps the generation
// of its table, and a delete also bumps the tables its cascade touches, so
// stale entries stop being read and expire on their TTL.
type CachedRepository[T any] struct {
	realRepo repository.Repository[T]
	redis    *redis.Client
	table    string
	cascades []string
	ttl      time.Duration
	logger   *zap.Logger
}

func NewCachedRepository[T any](realRepo repository.Repository[T], rdb *redis.Client, table string, ttl time.Duration, logger *zap.Logger) *CachedRepository[T] {
	return &CachedRepository[T]{
		realRepo: realRepo,
		redis:    rdb,
		table:    table,
		cascades: repository.DependentTables(table),
		ttl:      ttl,
		logger:   logger.With(zap.String("table", table)),
	}
}

func generationKey(table string) string {
	return table + ":gen"
}

// key returns the entry key for suffix under the current generation, or
// false when redis cannot be read and the cache should be bypassed.
func (c *CachedRepository[T]) key(ctx context.Context, suffix string) (string, bool) {
	gen, err := c.redis.Get(ctx, generationKey(c.table)).Int64()
	switch {
	case err == nil, errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("redis error (continuing with DB)", zap.Error(err))
		return "", false
	}
	return fmt.Sprintf("%s:%d:%s", c.table, gen, suffix), true
}

func (c *CachedRepository[T]) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("failed to marshal cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache entry", zap.String("key", key), zap.Error(err))
	}
}

func (c *CachedRepository[T]) invalidate(ctx context.Context, tables ...string) {
	for _, table := range tables {
		if err := c.redis.Incr(ctx, generationKey(table)).Err(); err != nil {
			c.logger.Error("failed to invalidate cache", zap.String("invalidated", table), zap.Error(err))
		}
	}
}

func (c *CachedRepository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	key, ok := c.key(ctx, fmt.Sprintf("id:%d", id))
	if !ok {
		return c.realRepo.GetByID(ctx, id)
	}

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, repository.ErrNotFound
		}

		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			c.logger.Warn("failed to unmarshal cached row (continuing with DB)", zap.String("key", key), zap.Error(err))
			break
		}
		return &v, nil

	case errors.Is(err, redis.Nil):

	default:
		c.logger.Warn("redis error (continuing with DB)", zap.Error(err))
	}

	v, err := c.realRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			if setErr := c.redis.Set(ctx, key, notFoundMarker, notFoundTTL).Err(); setErr != nil {
				c.logger.Warn("failed to cache notfound", zap.Error(setErr))
			}
		}
		return nil, err
	}

	c.store(ctx, key, v)
	return v, nil
}

func (c *CachedRepository[T]) GetAll(ctx context.Context) ([]T, error) {
	key, ok := c.key(ctx, "all")
	if !ok {
		return c.realRepo.GetAll(ctx)
	}

	data, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var vs []T
		if err := json.Unmarshal(data, &vs); err == nil {
			return vs, nil
		}
		c.logger.Warn("failed to unmarshal cached list (continuing with DB)", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("redis error (continuing with DB)", zap.Error(err))
	}

	vs, err := c.realRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, vs)
	return vs, nil
}

func (c *CachedRepository[T]) Create(ctx context.Context, v *T) error {
	err := c.realRepo.Create(ctx, v)
	c.invalidate(ctx, c.table)
	return err
}

func (c *CachedRepository[T]) Update(ctx context.Context, v *T) error {
	err := c.realRepo.Update(ctx, v)
	c.invalidate(ctx, c.table)
	return err
}

func (c *CachedRepository[T]) Delete(ctx context.Context, id int64) error {
	err := c.realRepo.Delete(ctx, id)
	c.invalidate(ctx, append([]string{c.table}, c.cascades...)...)
	return err
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pricing-engine/internal/domain"
	"pricing-engine/internal/ports"
)

// Redis-backed implementation of the SolveCache port. A cache miss
// (including a Redis error) is never fatal to the caller: Solve still
// runs, it just doesn't get to skip the work.
type RedisSolveCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSolveCache(client *redis.Client, ttl time.Duration) *RedisSolveCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisSolveCache{Client: client, TTL: ttl}
}

func (c *RedisSolveCache) Get(ctx context.Context, key ports.SolveCacheKey) ([]domain.Column, bool, error) {
	if c.Client == nil {
		return nil, false, errors.New("redis solve cache: client is nil")
	}

	raw, err := c.Client.Get(ctx, redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis solve cache: get: %w", err)
	}

	var columns []domain.Column
	if err := json.Unmarshal(raw, &columns); err != nil {
		return nil, false, fmt.Errorf("redis solve cache: decode: %w", err)
	}

	return columns, true, nil
}

func (c *RedisSolveCache) Set(ctx context.Context, key ports.SolveCacheKey, columns []domain.Column) error {
	if c.Client == nil {
		return errors.New("redis solve cache: client is nil")
	}

	raw, err := json.Marshal(columns)
	if err != nil {
		return fmt.Errorf("redis solve cache: encode: %w", err)
	}

	if err := c.Client.Set(ctx, redisKey(key), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("redis solve cache: set: %w", err)
	}

	return nil
}

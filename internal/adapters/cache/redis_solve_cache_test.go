package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"pricing-engine/internal/domain"
	"pricing-engine/internal/engine"
	"pricing-engine/internal/ports"
)

func newTestRedisCache(t *testing.T) *RedisSolveCache {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisSolveCache(client, 0)
}

func TestRedisSolveCacheMissThenHit(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	key := ports.SolveCacheKey{
		InstanceID: "inst-1",
		Duals:      []float64{0, 10, 10},
		Forbidden:  []engine.ForbiddenArc{{From: 0, To: 1}},
	}

	_, hit, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error on miss: %v", err)
	}
	if hit {
		t.Fatalf("expected a cache miss before any Set")
	}

	want := []domain.Column{
		{NodeSequence: []int{0, 2, 0}, ReducedCost: -10, Distance: 10, Load: 1},
	}
	if err := c.Set(ctx, key, want); err != nil {
		t.Fatalf("unexpected error on set: %v", err)
	}

	got, hit, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error on hit: %v", err)
	}
	if !hit {
		t.Fatalf("expected a cache hit after Set")
	}
	if len(got) != 1 || got[0].ReducedCost != want[0].ReducedCost {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRedisSolveCacheKeyIsSensitiveToDuals(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	base := ports.SolveCacheKey{InstanceID: "inst-1", Duals: []float64{0, 10, 10}}
	if err := c.Set(ctx, base, []domain.Column{{NodeSequence: []int{0, 1, 0}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	changed := ports.SolveCacheKey{InstanceID: "inst-1", Duals: []float64{0, 5, 10}}
	_, hit, err := c.Get(ctx, changed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit {
		t.Fatalf("expected a miss: duals differ from the cached key")
	}
}

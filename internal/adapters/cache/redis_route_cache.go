package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRouteCache stores optimized routes as JSON with a fixed TTL.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{client: client, ttl: ttl, prefix: "itinerary:"}
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ domain.OptimizedRoute, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if c.client == nil {
		return domain.OptimizedRoute{}, false, errors.New("route cache: redis client is nil")
	}

	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.OptimizedRoute{}, false, nil
	}
	if err != nil {
		return domain.OptimizedRoute{}, false, fmt.Errorf("get route cache: %w", err)
	}

	var route domain.OptimizedRoute
	if err := json.Unmarshal(b, &route); err != nil {
		return domain.OptimizedRoute{}, false, fmt.Errorf("get route cache: decode: %w", err)
	}
	return route, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, route domain.OptimizedRoute) (err error) {
	defer obs.Time(ctx, "route.cache.Put")(&err)

	if c.client == nil {
		return errors.New("route cache: redis client is nil")
	}

	b, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("put route cache: encode: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("put route cache: %w", err)
	}
	return nil
}

// Package cache provides a small Redis-backed cache used for hot catalog reads.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Get returns "" on a miss, an error only on transport failure.
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	Key(parts ...string) string
}

type redisCache struct {
	client *redis.Client
	prefix string
}

func NewRedis(addr, prefix string) Cache {
	return &redisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: prefix,
	}
}

func (r *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCache) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (r *redisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCache) Key(parts ...string) string {
	k := r.prefix
	for _, p := range parts {
		k = fmt.Sprintf("%s:%s", k, p)
	}
	return k
}

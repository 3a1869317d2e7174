// Package cache is a small redis-backed JSON cache used only on non-core
// read paths (provider search). Availability and booking reads always hit
// the database fresh.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr string, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &Cache{client: client, ttl: ttl}, nil
}

// GetJSON loads key into dest, reporting whether it was a hit. A nil cache
// always misses, so callers never have to branch on availability.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}

	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(b, dest) == nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}

	b, err := json.Marshal(v)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		log.Println("cache set error:", err)
	}
}

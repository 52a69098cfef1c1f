package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const replyKeyPrefix = "tutor:reply:"

// RedisCache stores generated replies keyed by model and prompt.
type RedisCache struct {
	client *redis.Client
	model  string
	ttl    time.Duration
}

func NewRedisCache(redisURL, model string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return NewRedisCacheFromClient(client, model, ttl), nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client, model string, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, model: model, ttl: ttl}
}

// Get returns the cached reply for prompt. A miss is ("", false, nil).
func (c *RedisCache) Get(ctx context.Context, prompt string) (string, bool, error) {
	reply, err := c.client.Get(ctx, ReplyKey(c.model, prompt)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return reply, true, nil
}

// Set stores reply for prompt with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, prompt, reply string) error {
	return c.client.Set(ctx, ReplyKey(c.model, prompt), reply, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// ReplyKey derives the cache key for a prompt answered by model.
func ReplyKey(model, prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return replyKeyPrefix + model + ":" + hex.EncodeToString(sum[:])
}

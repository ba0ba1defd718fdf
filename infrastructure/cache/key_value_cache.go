package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const settingsPrefix = "autoposter:settings:"

// KeyValueCache keeps settings in Redis. INCR gives the rotation counter
// its atomic read-modify-write.
type KeyValueCache struct {
	client *redis.Client
}

func NewKeyValueCache(client *redis.Client) *KeyValueCache {
	return &KeyValueCache{client: client}
}

func (c *KeyValueCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.client.Get(ctx, settingsPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *KeyValueCache) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, settingsPrefix+key, value, 0).Err()
}

func (c *KeyValueCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = settingsPrefix + k
	}
	return c.client.Del(ctx, prefixed...).Err()
}

func (c *KeyValueCache) Increment(ctx context.Context, key string) (int64, error) {
	return c.client.Incr(ctx, settingsPrefix+key).Result()
}

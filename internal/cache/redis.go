package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/saraye/config"
	"github.com/Domenick1991/saraye/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client      *redis.Client
	propertyTTL time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

func NewRedisCache(client *redis.Client, propertyTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      client,
		propertyTTL: propertyTTL,
	}
}

// GetProperty returns nil without error on a cache miss.
func (c *RedisCache) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	data, err := c.client.Get(ctx, propertyKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var property domain.Property
	if err := json.Unmarshal(data, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (c *RedisCache) SetProperty(ctx context.Context, property *domain.Property) error {
	payload, err := json.Marshal(property)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, propertyKey(property.ID), payload, c.propertyTTL).Err()
}

func (c *RedisCache) InvalidateProperty(ctx context.Context, id string) error {
	return c.client.Del(ctx, propertyKey(id)).Err()
}

// releaseScript deletes the lock only while it still holds the caller's token,
// so an expired lock taken over by another request is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// AcquirePropertyLock returns the lock token, or "" when another request
// holds the lock.
func (c *RedisCache) AcquirePropertyLock(ctx context.Context, propertyID string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	ok, err := c.client.SetNX(ctx, propertyLockKey(propertyID), token, ttl).Result()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return token, nil
}

func (c *RedisCache) ReleasePropertyLock(ctx context.Context, propertyID, token string) error {
	return releaseScript.Run(ctx, c.client, []string{propertyLockKey(propertyID)}, token).Err()
}

func propertyKey(id string) string {
	return "cache:property:" + id
}

func propertyLockKey(propertyID string) string {
	return fmt.Sprintf("lock:property:%s", propertyID)
}

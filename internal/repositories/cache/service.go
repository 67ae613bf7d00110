package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FlagService is the Redis implementation of the flag cache. Keys are
// rule-scoped per user; each rule owns a disjoint key space, so no
// read-modify-write atomicity is needed.
type FlagService struct {
	client *redis.Client
}

func NewFlagService(client *redis.Client) *FlagService {
	return &FlagService{client: client}
}

// Exists reports whether the flag key is set. A missing key is not an error.
func (s *FlagService) Exists(ctx context.Context, key string) (bool, error) {
	if _, err := s.client.Get(ctx, key).Result(); err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to read flag %s: %w", key, err)
	}
	return true, nil
}

// SetFlag marks the key for ttl. The value is irrelevant; presence is the signal.
func (s *FlagService) SetFlag(ctx context.Context, key string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set flag %s: %w", key, err)
	}
	return nil
}

// HealthCheck pings Redis.
func (s *FlagService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// FlushAll flushes all keys from the cache
func (s *FlagService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close closes the Redis client connection
func (s *FlagService) Close() error {
	return s.client.Close()
}

package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"periciapi/internal/kvstore"
)

// KVRedis is a Redis implementation of kvstore.Store, selected with
// KV_BACKEND=redis. Slots map one-to-one onto Redis string keys with no
// expiry.
type KVRedis struct {
	client *redis.Client
	quota  int
}

// NewKVRedis creates a store from a Redis URL (redis://...). It verifies
// connectivity once up front.
func NewKVRedis(ctx context.Context, url string, quotaBytes int) (*KVRedis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if quotaBytes <= 0 {
		quotaBytes = 5 * 1024 * 1024
	}
	return &KVRedis{client: client, quota: quotaBytes}, nil
}

var _ kvstore.Store = (*KVRedis)(nil)

func (s *KVRedis) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("kvstore get %q: %w", key, err)
	}
	return value, nil
}

func (s *KVRedis) Set(ctx context.Context, key string, value []byte) error {
	if len(value) > s.quota {
		return fmt.Errorf("kvstore set %q (%d bytes): %w", key, len(value), kvstore.ErrQuotaExceeded)
	}
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("kvstore set %q: %w", key, err)
	}
	return nil
}

func (s *KVRedis) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("kvstore delete %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *KVRedis) Close() error {
	return s.client.Close()
}

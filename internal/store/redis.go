package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps each collection under a prefixed string key
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(c Collection) string {
	return s.prefix + string(c)
}

func (s *RedisStore) Get(ctx context.Context, c Collection) ([]byte, error) {
	blob, err := s.rdb.Get(ctx, s.key(c)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get collection %s: %w", c, err)
	}
	return blob, nil
}

func (s *RedisStore) Put(ctx context.Context, c Collection, blob []byte) error {
	if err := s.rdb.Set(ctx, s.key(c), blob, 0).Err(); err != nil {
		return fmt.Errorf("put collection %s: %w", c, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

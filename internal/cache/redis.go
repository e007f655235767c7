package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore is the shared TTL-enforcing backend for multi-instance
// deployments. Backend failures degrade to cache misses rather than
// failing the caller.
type RedisStore struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisStore(client *redis.Client, log *zap.Logger) *RedisStore {
	return &RedisStore{client: client, log: log}
}

func (s *RedisStore) Get(key string) ([]byte, bool) {
	value, err := s.client.Get(context.Background(), key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return value, true
}

func (s *RedisStore) Put(key string, value []byte, ttl time.Duration) {
	if err := s.client.Set(context.Background(), key, value, ttl).Err(); err != nil {
		s.log.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *RedisStore) Evict(key string) {
	if err := s.client.Del(context.Background(), key).Err(); err != nil {
		s.log.Warn("redis del failed", zap.String("key", key), zap.Error(err))
	}
}

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps session state in Redis so any instance behind the load
// balancer can serve the confirmation screen.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func redisKey(sessionID, key string) string {
	return "session:" + sessionID + ":" + key
}

func (s *RedisStore) Save(ctx context.Context, sessionID, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling session value: %w", err)
	}
	return s.rdb.Set(ctx, redisKey(sessionID, key), data, s.ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, sessionID, key string, dest any) error {
	val, err := s.rdb.Get(ctx, redisKey(sessionID, key)).Result()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("loading session value: %w", err)
	}
	return json.Unmarshal([]byte(val), dest)
}

func (s *RedisStore) Delete(ctx context.Context, sessionID, key string) error {
	return s.rdb.Del(ctx, redisKey(sessionID, key)).Err()
}

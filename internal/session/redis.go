package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists session state in Redis so sessions survive restarts and
// can be shared across instances. Each Set refreshes the TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, token string) (State, bool, error) {
	raw, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return State{}, false, nil
	}
	if err != nil {
		return State{}, false, err
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return State{}, false, err
	}
	return state, true, nil
}

func (s *RedisStore) Set(ctx context.Context, token string, state State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(token), raw, s.ttl).Err()
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

func (s *RedisStore) key(token string) string {
	return "session:" + token
}

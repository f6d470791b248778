package storage

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

var bgContext = context.Background()

// Tokens is the process-wide active refresh-token store, set up alongside the
// Redis client.
var Tokens *RedisTokenStore

// RedisTokenStore keeps the set of active refresh tokens in Redis: key is the
// token string, value the owning login id, TTL the token lifetime. A token
// absent from the store is dead no matter what its signature says.
type RedisTokenStore struct {
	Client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{Client: client}
}

func (s *RedisTokenStore) Save(loginID, token string, ttl time.Duration) error {
	return s.Client.Set(bgContext, tokenKey(token), loginID, ttl).Err()
}

func (s *RedisTokenStore) Exists(token string) (bool, error) {
	n, err := s.Client.Exists(bgContext, tokenKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisTokenStore) Delete(token string) error {
	return s.Client.Del(bgContext, tokenKey(token)).Err()
}

func tokenKey(token string) string {
	return "refresh:" + token
}

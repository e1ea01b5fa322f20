// backend/internal/adapters/out/local/store_redis.go
package local

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each key as a plain string value under <prefix><key>.
type RedisStore struct {
	Client redis.UniversalClient
	Prefix string
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{Client: client, Prefix: strings.TrimSpace(prefix)}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s == nil || s.Client == nil {
		return nil, false, errors.New("local.RedisStore: client is nil")
	}
	b, err := s.Client.Get(ctx, s.Prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	if s == nil || s.Client == nil {
		return errors.New("local.RedisStore: client is nil")
	}
	// SET replaces the value atomically; no expiry.
	return s.Client.Set(ctx, s.Prefix+key, value, 0).Err()
}

package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps transport failures against the redis backend.
var ErrRedisUnavailable = errors.New("tokenstore: redis unavailable")

// Redis stores the pair as a single hash so both fields are written by one
// HSET and removed by one DEL. Intended for headless agents that share a
// session across processes.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis returns a store writing to the given key. An empty key defaults
// to "sessionkit:tokens".
func NewRedis(client *redis.Client, key string) (*Redis, error) {
	if client == nil {
		return nil, errors.New("tokenstore: redis client required")
	}
	if key == "" {
		key = "sessionkit:tokens"
	}
	return &Redis{client: client, key: key}, nil
}

// Load implements [Store]. A missing hash means no session.
func (r *Redis) Load(ctx context.Context) (Pair, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return Pair{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return Pair{
		AccessToken:  fields[KeyAccessToken],
		RefreshToken: fields[KeyRefreshToken],
	}, nil
}

// Save implements [Store].
func (r *Redis) Save(ctx context.Context, pair Pair) error {
	err := r.client.HSet(ctx, r.key,
		KeyAccessToken, pair.AccessToken,
		KeyRefreshToken, pair.RefreshToken,
	).Err()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Clear implements [Store].
func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

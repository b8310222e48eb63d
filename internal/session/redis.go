package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKeyring persists session entries in Redis, namespaced per interactive
// context (one prefix per console sign-in, normally derived from the session
// cookie). Entries share a TTL so an abandoned console expires as a unit.
type RedisKeyring struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisKeyring constructs a keyring over client. prefix scopes the entry
// names; ttl <= 0 disables expiry.
func NewRedisKeyring(client *redis.Client, prefix string, ttl time.Duration) *RedisKeyring {
	return &RedisKeyring{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisKeyring) key(name string) string {
	return fmt.Sprintf("console:session:%s:%s", r.prefix, name)
}

func (r *RedisKeyring) Get(ctx context.Context, name string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("session: keyring get %s: %w", name, err)
	}
	return v, true, nil
}

func (r *RedisKeyring) Set(ctx context.Context, name, value string) error {
	if err := r.client.Set(ctx, r.key(name), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("session: keyring set %s: %w", name, err)
	}
	return nil
}

func (r *RedisKeyring) Delete(ctx context.Context, name string) error {
	if err := r.client.Del(ctx, r.key(name)).Err(); err != nil {
		return fmt.Errorf("session: keyring delete %s: %w", name, err)
	}
	return nil
}

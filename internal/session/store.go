// Package session implements the front-door authorization contract:
// decode an express-session-style cookie, strip its signature, and
// look up the remaining session id in Redis. The store here is
// narrowed to exactly the operation the gate needs (existence lookup)
// rather than the full Cache surface a shared-service client usually
// exposes — nothing else in this service touches Redis.
package session

import (
	"context"
	"fmt"

	"judgebox/internal/config"

	"github.com/redis/go-redis/v9"
)

// Store looks up a session id in the external session store.
type Store interface {
	// Exists reports whether key is present (and not expired).
	Exists(ctx context.Context, key string) (bool, error)
}

// RedisStore is the production Store backed by go-redis.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore constructs a client from cfg. It does not eagerly
// ping; the first Exists call surfaces any connectivity problem.
func NewRedisStore(cfg config.RedisConfig) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisStore{client: client, prefix: cfg.Prefix}
}

// Exists checks `<prefix>:<id>` the way the session gate's contract requires.
func (s *RedisStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	key := fmt.Sprintf("%s:%s", s.prefix, sessionID)
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

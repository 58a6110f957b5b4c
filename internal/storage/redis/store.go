package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/hongminglow/labubu-portal/internal/storage"
)

var _ storage.KV = (*Store)(nil)

// Store keeps entries in Redis under "<prefix>:<namespace>:<key>". Every Get and Set
// pushes the key's expiry out to ttl.
type Store struct {
	client goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewStore connects to addr and verifies the connection with PING.
func NewStore(ctx context.Context, addr, password string, ttl time.Duration) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Store{client: client, prefix: "portal", ttl: ttl}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(namespace, key string) string {
	return s.prefix + ":" + namespace + ":" + key
}

func (s *Store) Get(ctx context.Context, namespace, key string) (string, error) {
	value, err := s.client.GetEx(ctx, s.key(namespace, key), s.ttl).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, namespace, key, value string) error {
	if err := s.client.Set(ctx, s.key(namespace, key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, namespace string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, s.key(namespace, key))
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

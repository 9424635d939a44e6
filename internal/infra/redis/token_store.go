package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// TokenStore keeps the admin token under one Redis key so several console
// processes can share a login. The key has no TTL; the backend decides when
// the token stops working.
type TokenStore struct {
	client *redis.Client
	key    string
}

// NewTokenStore stores the token at namespace+key.
func NewTokenStore(client *redis.Client, namespace, key string) *TokenStore {
	return &TokenStore{client: client, key: namespace + key}
}

func (s *TokenStore) Set(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("redis set token: %w", err)
	}
	return nil
}

func (s *TokenStore) Get(ctx context.Context) (string, bool, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get token: %w", err)
	}
	return token, token != "", nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis clear token: %w", err)
	}
	return nil
}

// IsPresent fails closed: a Redis error counts as no token.
func (s *TokenStore) IsPresent(ctx context.Context) bool {
	n, err := s.client.Exists(ctx, s.key).Result()
	if err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("token presence check failed")
		return false
	}
	return n > 0
}

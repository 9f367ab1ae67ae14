package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore is the allow-list of issued access tokens. A token whose key
// is absent has been revoked or has expired.
type TokenStore interface {
	Store(ctx context.Context, key string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Revoke(ctx context.Context, key string) error
}

// ErrInvalidTTL is returned when an entry would never expire or is already expired.
var ErrInvalidTTL = errors.New("token ttl must be positive")

// AccessTokenKey builds the allow-list key for a token id owned by subject.
func AccessTokenKey(subject, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", subject, tokenID)
}

// RedisCmdable is the subset of *redis.Client the token store needs.
type RedisCmdable interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisTokenStore struct {
	client RedisCmdable
}

func NewRedisTokenStore(client RedisCmdable) TokenStore {
	return &redisTokenStore{client: client}
}

func (s *redisTokenStore) Store(ctx context.Context, key string, ttl time.Duration) error {
	// redis treats a zero expiration as "keep forever"
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	if err := s.client.Set(ctx, key, "valid", ttl).Err(); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

func (s *redisTokenStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("check token: %w", err)
	}
	return n > 0, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// memoryTokenStore backs the allow-list when no redis host is configured.
// Entries do not survive a restart.
type memoryTokenStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryTokenStore() TokenStore {
	return &memoryTokenStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *memoryTokenStore) Store(_ context.Context, key string, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	s.entries[key] = s.now().Add(ttl)
	return nil
}

func (s *memoryTokenStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expiresAt) {
		delete(s.entries, key)
		return false, nil
	}
	return true, nil
}

func (s *memoryTokenStore) Revoke(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *memoryTokenStore) sweepLocked() {
	now := s.now()
	for key, expiresAt := range s.entries {
		if !now.Before(expiresAt) {
			delete(s.entries, key)
		}
	}
}

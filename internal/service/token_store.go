package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"todo-api/internal/domain"
)

// TokenStore mantiene el conjunto de tokens activos por usuario.
// Un token firmado solo es valido mientras siga en el store.
type TokenStore interface {
	Add(ctx context.Context, userID string, token domain.Token) error
	Has(ctx context.Context, userID string, token domain.Token) (bool, error)
	Remove(ctx context.Context, userID, token string) error
}

type memoryTokenStore struct {
	mu    sync.Mutex
	items map[string]map[string]string
}

func NewMemoryTokenStore() TokenStore {
	return &memoryTokenStore{
		items: make(map[string]map[string]string),
	}
}

func (s *memoryTokenStore) Add(_ context.Context, userID string, token domain.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.items[userID]
	if !ok {
		set = make(map[string]string)
		s.items[userID] = set
	}
	set[token.Token] = token.Access
	return nil
}

func (s *memoryTokenStore) Has(_ context.Context, userID string, token domain.Token) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	access, ok := s.items[userID][token.Token]
	return ok && access == token.Access, nil
}

func (s *memoryTokenStore) Remove(_ context.Context, userID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items[userID], token)
	return nil
}

const defaultRedisTimeout = 500 * time.Millisecond

type redisHashClient interface {
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd
}

// redisTokenStore guarda un hash token -> access por usuario.
type redisTokenStore struct {
	client  redisHashClient
	prefix  string
	timeout time.Duration
}

func NewRedisTokenStore(client *redis.Client) TokenStore {
	if client == nil {
		return nil
	}
	return &redisTokenStore{
		client:  client,
		prefix:  "auth:tokens:",
		timeout: defaultRedisTimeout,
	}
}

func (s *redisTokenStore) key(userID string) string {
	return s.prefix + strings.TrimSpace(userID)
}

func (s *redisTokenStore) Add(ctx context.Context, userID string, token domain.Token) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.HSet(ctx, s.key(userID), token.Token, token.Access).Err()
}

func (s *redisTokenStore) Has(ctx context.Context, userID string, token domain.Token) (bool, error) {
	if strings.TrimSpace(token.Token) == "" {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	access, err := s.client.HGet(ctx, s.key(userID), token.Token).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return access == token.Access, nil
}

func (s *redisTokenStore) Remove(ctx context.Context, userID, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.HDel(ctx, s.key(userID), token).Err()
}

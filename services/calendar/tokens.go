package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	"golang.org/x/oauth2"
)

const tokenKeyPrefix = "hosttoken:"

// RedisTokenStore persists host OAuth tokens in Redis so connections
// survive process restarts. Tokens are stored without expiry; Google
// refresh tokens are long-lived and revocation happens upstream.
type RedisTokenStore struct {
	Client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{Client: client}
}

func (s *RedisTokenStore) Save(ctx context.Context, hostID string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	return s.Client.Set(ctx, tokenKeyPrefix+hostID, data, 0).Err()
}

func (s *RedisTokenStore) Get(ctx context.Context, hostID string) (*oauth2.Token, error) {
	data, err := s.Client.Get(ctx, tokenKeyPrefix+hostID).Bytes()
	if err != nil {
		return nil, fmt.Errorf("token for host %s: %w", hostID, err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("unmarshal token for host %s: %w", hostID, err)
	}
	return &tok, nil
}

func (s *RedisTokenStore) Connected(ctx context.Context, hostID string) bool {
	n, err := s.Client.Exists(ctx, tokenKeyPrefix+hostID).Result()
	return err == nil && n > 0
}

// MemoryTokenStore is a process-local TokenStore, used in tests and when
// running without Redis.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]*oauth2.Token
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]*oauth2.Token)}
}

func (s *MemoryTokenStore) Save(_ context.Context, hostID string, tok *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[hostID] = tok
	return nil
}

func (s *MemoryTokenStore) Get(_ context.Context, hostID string) (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tok, ok := s.tokens[hostID]
	if !ok {
		return nil, fmt.Errorf("no token for host %s", hostID)
	}
	return tok, nil
}

func (s *MemoryTokenStore) Connected(_ context.Context, hostID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens[hostID]
	return ok
}

package memory

import (
	"context"
	"sync"
)

// TokenStore is an in-memory implementation of app.TokenStore. The token
// lives as long as the process.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

func (s *TokenStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *TokenStore) Get(_ context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != "", nil
}

func (s *TokenStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func (s *TokenStore) IsPresent(_ context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// TokenStore persists the admin token in a small YAML document so the CLI
// stays logged in between invocations.
type TokenStore struct {
	mu   sync.Mutex
	path string
	key  string
}

func NewTokenStore(path, key string) *TokenStore {
	return &TokenStore{path: path, key: key}
}

func (s *TokenStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	data, err := yaml.Marshal(map[string]string{s.key: token})
	if err != nil {
		return fmt.Errorf("encode token file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (s *TokenStore) Get(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *TokenStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

func (s *TokenStore) IsPresent(_ context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.read()
	if err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("token file unreadable")
		return false
	}
	return ok
}

func (s *TokenStore) read() (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read token file: %w", err)
	}
	doc := map[string]string{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", false, fmt.Errorf("decode token file: %w", err)
	}
	token := doc[s.key]
	return token, token != "", nil
}

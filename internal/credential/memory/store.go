package memory

import (
	"context"
	"sync"

	"github.com/dtroode/bookswap-agent/internal/model"
)

var _ model.CredentialStore = (*Store)(nil)

// Store keeps the credential in process memory. It is lost on restart.
type Store struct {
	mu         sync.RWMutex
	credential string
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Load(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.credential == "" {
		return "", model.ErrNotFound
	}
	return s.credential, nil
}

func (s *Store) Save(_ context.Context, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.credential = credential
	return nil
}

func (s *Store) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.credential = ""
	return nil
}

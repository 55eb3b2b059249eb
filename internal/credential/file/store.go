package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dtroode/bookswap-agent/internal/model"
)

var _ model.CredentialStore = (*Store)(nil)

type document struct {
	Credential string    `json:"credential"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Store keeps the credential in a JSON document readable only by the owner.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns ErrNotFound when the document is absent and a wrapped
// ErrMalformedCredential when it cannot be read back.
func (s *Store) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to read credential file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("%w: credential file is corrupt: %v", model.ErrMalformedCredential, err)
	}
	if doc.Credential == "" {
		return "", model.ErrNotFound
	}

	return doc.Credential, nil
}

func (s *Store) Save(_ context.Context, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(document{Credential: credential, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create credential directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credential-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary credential file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to restrict credential file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write credential file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close credential file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace credential file: %w", err)
	}
	return nil
}

func (s *Store) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete credential file: %w", err)
	}
	return nil
}

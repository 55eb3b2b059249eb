package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dtroode/bookswap-agent/internal/model"
)

var _ model.CredentialStore = (*CredentialRepository)(nil)

// CredentialRepository keeps one credential per profile.
type CredentialRepository struct {
	db      *Connection
	profile string
}

func NewCredentialRepository(db *Connection, profile string) *CredentialRepository {
	if profile == "" {
		profile = "default"
	}
	return &CredentialRepository{
		db:      db,
		profile: profile,
	}
}

func (r *CredentialRepository) Load(ctx context.Context) (string, error) {
	var token string
	query := `SELECT token FROM credentials WHERE profile = $1`

	err := r.db.QueryRowContext(ctx, query, r.profile).Scan(&token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to load credential: %w", err)
	}

	if token == "" {
		return "", model.ErrNotFound
	}
	return token, nil
}

func (r *CredentialRepository) Save(ctx context.Context, credential string) error {
	query := `INSERT INTO credentials (profile, token, updated_at)
			  VALUES ($1, $2, NOW())
			  ON CONFLICT (profile) DO UPDATE SET token = EXCLUDED.token, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, r.profile, credential); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

func (r *CredentialRepository) Delete(ctx context.Context) error {
	query := `DELETE FROM credentials WHERE profile = $1`

	if _, err := r.db.ExecContext(ctx, query, r.profile); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}

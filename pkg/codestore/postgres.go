package codestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCodeStore implements CodeStore using PostgreSQL. It lets multiple
// service instances share one code cache; reads filter expired rows so an
// expired entry is indistinguishable from an absent one.
type PostgresCodeStore struct {
	pool *pgxpool.Pool
}

// NewPostgresCodeStore creates a new PostgreSQL-backed code store.
func NewPostgresCodeStore(pool *pgxpool.Pool) *PostgresCodeStore {
	return &PostgresCodeStore{
		pool: pool,
	}
}

func (s *PostgresCodeStore) Set(ctx context.Context, principalID uuid.UUID, code string, ttl time.Duration) error {
	query := `
		INSERT INTO one_time_codes (principal_id, code, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (principal_id)
		DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at
	`

	_, err := s.pool.Exec(ctx, query, principalID, code, time.Now().UTC().Add(ttl))
	if err != nil {
		return fmt.Errorf("failed to store one-time code: %w", err)
	}
	return nil
}

func (s *PostgresCodeStore) Get(ctx context.Context, principalID uuid.UUID) (string, bool, error) {
	query := `
		SELECT code FROM one_time_codes
		WHERE principal_id = $1 AND expires_at > NOW()
	`

	var code string
	err := s.pool.QueryRow(ctx, query, principalID).Scan(&code)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read one-time code: %w", err)
	}
	return code, true, nil
}

func (s *PostgresCodeStore) Delete(ctx context.Context, principalID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM one_time_codes WHERE principal_id = $1`, principalID)
	if err != nil {
		return fmt.Errorf("failed to delete one-time code: %w", err)
	}
	return nil
}

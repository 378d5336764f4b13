package twofa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresEnrollmentRepository implements EnrollmentRepository using
// PostgreSQL.
type PostgresEnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEnrollmentRepository creates a new PostgreSQL enrollment repository
func NewPostgresEnrollmentRepository(pool *pgxpool.Pool) *PostgresEnrollmentRepository {
	return &PostgresEnrollmentRepository{
		pool: pool,
	}
}

func (r *PostgresEnrollmentRepository) FindActiveByPrincipalID(ctx context.Context, principalID uuid.UUID) (AuthenticatorEnrollment, error) {
	query := `
		SELECT id, principal_id, secret, is_active, created_at
		FROM authenticator_enrollments
		WHERE principal_id = $1 AND is_active
		ORDER BY created_at DESC
		LIMIT 1
	`

	var enrollment AuthenticatorEnrollment
	err := r.pool.QueryRow(ctx, query, principalID).Scan(
		&enrollment.ID,
		&enrollment.PrincipalID,
		&enrollment.Secret,
		&enrollment.Active,
		&enrollment.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return AuthenticatorEnrollment{}, ErrNoEnrollment
	}
	if err != nil {
		return AuthenticatorEnrollment{}, fmt.Errorf("failed to get enrollment: %w", err)
	}

	return enrollment, nil
}

// PostgresPrincipalDirectory implements PrincipalDirectory using PostgreSQL.
type PostgresPrincipalDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgresPrincipalDirectory creates a new PostgreSQL principal directory
func NewPostgresPrincipalDirectory(pool *pgxpool.Pool) *PostgresPrincipalDirectory {
	return &PostgresPrincipalDirectory{
		pool: pool,
	}
}

func (d *PostgresPrincipalDirectory) FindPrincipalByID(ctx context.Context, id uuid.UUID) (Principal, error) {
	query := `
		SELECT id, email, twofa_mechanism
		FROM principals
		WHERE id = $1 AND deleted_at IS NULL
	`

	var principal Principal
	err := d.pool.QueryRow(ctx, query, id).Scan(
		&principal.ID,
		&principal.Email,
		&principal.Mechanism,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Principal{}, ErrPrincipalNotFound
	}
	if err != nil {
		return Principal{}, fmt.Errorf("failed to get principal: %w", err)
	}

	// Surface corrupt rows early; the router still decides how the request
	// is rejected.
	if err := ValidateMechanism(principal.Mechanism); err != nil {
		slog.Warn("Principal row carries unrecognized two-factor mechanism",
			"principalId", id, "mechanism", principal.Mechanism)
	}

	return principal, nil
}

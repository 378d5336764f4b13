package twofa

import (
	"context"

	"github.com/google/uuid"
)

// EnrollmentRepository reads authenticator enrollments. Creation and
// revocation belong to the enrollment flow, which lives outside this
// subsystem.
type EnrollmentRepository interface {
	// FindActiveByPrincipalID returns the most recently created active
	// enrollment for the principal, or ErrNoEnrollment when none exists.
	// When duplicates exist the newest active one wins.
	FindActiveByPrincipalID(ctx context.Context, principalID uuid.UUID) (AuthenticatorEnrollment, error)
}

// PrincipalDirectory resolves principals by identifier. User identity is
// externally owned; this is the only view of it the subsystem needs.
type PrincipalDirectory interface {
	FindPrincipalByID(ctx context.Context, id uuid.UUID) (Principal, error)
}

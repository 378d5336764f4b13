package twofa

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryEnrollmentRepository implements EnrollmentRepository using
// in-memory storage.
type InMemoryEnrollmentRepository struct {
	mu          sync.RWMutex
	enrollments map[uuid.UUID][]AuthenticatorEnrollment // principalID -> enrollments
}

// NewInMemoryEnrollmentRepository creates a new in-memory enrollment repository
func NewInMemoryEnrollmentRepository() *InMemoryEnrollmentRepository {
	return &InMemoryEnrollmentRepository{
		enrollments: make(map[uuid.UUID][]AuthenticatorEnrollment),
	}
}

// AddEnrollment registers an enrollment for a principal. Used by demo
// seeding and tests; the real enrollment flow lives elsewhere.
func (r *InMemoryEnrollmentRepository) AddEnrollment(principalID uuid.UUID, secret string, active bool, createdAt time.Time) AuthenticatorEnrollment {
	r.mu.Lock()
	defer r.mu.Unlock()

	enrollment := AuthenticatorEnrollment{
		ID:          uuid.New(),
		PrincipalID: principalID,
		Secret:      secret,
		Active:      active,
		CreatedAt:   createdAt,
	}
	r.enrollments[principalID] = append(r.enrollments[principalID], enrollment)
	return enrollment
}

func (r *InMemoryEnrollmentRepository) FindActiveByPrincipalID(ctx context.Context, principalID uuid.UUID) (AuthenticatorEnrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var newest AuthenticatorEnrollment
	found := false
	for _, e := range r.enrollments[principalID] {
		if !e.Active {
			continue
		}
		if !found || e.CreatedAt.After(newest.CreatedAt) {
			newest = e
			found = true
		}
	}
	if !found {
		return AuthenticatorEnrollment{}, ErrNoEnrollment
	}
	return newest, nil
}

// InMemoryPrincipalDirectory implements PrincipalDirectory using in-memory
// storage.
type InMemoryPrincipalDirectory struct {
	mu         sync.RWMutex
	principals map[uuid.UUID]Principal
}

// NewInMemoryPrincipalDirectory creates a new in-memory principal directory
func NewInMemoryPrincipalDirectory() *InMemoryPrincipalDirectory {
	return &InMemoryPrincipalDirectory{
		principals: make(map[uuid.UUID]Principal),
	}
}

// AddPrincipal registers a principal
func (d *InMemoryPrincipalDirectory) AddPrincipal(principal Principal) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.principals[principal.ID] = principal
}

func (d *InMemoryPrincipalDirectory) FindPrincipalByID(ctx context.Context, id uuid.UUID) (Principal, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	principal, ok := d.principals[id]
	if !ok {
		return Principal{}, ErrPrincipalNotFound
	}
	return principal, nil
}

// Package codestore provides short-lived storage for one-time verification
// codes, keyed by principal. Entries become unreadable once their TTL
// elapses; expiry is enforced by the store, not by its callers.
package codestore

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CodeStore is the one-time code cache consulted by the email verification
// strategy. Implementations must provide per-key atomic set/get/delete; no
// cross-key consistency is required beyond a process observing its own
// writes.
type CodeStore interface {
	// Set stores code for the principal, readable until ttl elapses.
	// An existing entry is overwritten; callers that must not overwrite
	// are expected to check with Get first.
	Set(ctx context.Context, principalID uuid.UUID, code string, ttl time.Duration) error

	// Get returns the stored code and true, or "" and false when no
	// unexpired entry exists.
	Get(ctx context.Context, principalID uuid.UUID) (string, bool, error)

	// Delete removes the entry for the principal. Deleting an absent key
	// is not an error.
	Delete(ctx context.Context, principalID uuid.UUID) error
}

package twofa

import "errors"

var (
	// ErrChallengePending is returned when a challenge is issued while an
	// unexpired code is still outstanding for the principal
	ErrChallengePending = errors.New("unfinished two-factor confirmation already exists")

	// ErrCodeExpired is returned when validation finds no stored code,
	// either because none was issued or because its TTL elapsed
	ErrCodeExpired = errors.New("two-factor code expired or was never issued")

	// ErrCodeMismatch is returned when the supplied code does not equal the
	// stored or computed code
	ErrCodeMismatch = errors.New("two-factor code is not valid")

	// ErrNoEnrollment is returned when TOTP validation finds no active
	// authenticator enrollment for the principal
	ErrNoEnrollment = errors.New("no active authenticator enrollment")

	// ErrUnknownMechanism is returned when a principal carries a mechanism
	// value this subsystem does not recognize
	ErrUnknownMechanism = errors.New("unrecognized two-factor mechanism")

	// ErrPrincipalNotFound is returned when the directory has no principal
	// for the requested identifier
	ErrPrincipalNotFound = errors.New("principal not found")
)

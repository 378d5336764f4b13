package twofa

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Mechanism is the second-factor method configured for a principal.
type Mechanism string

const (
	MechanismDisabled Mechanism = "disabled"
	MechanismEmail    Mechanism = "email"
	MechanismTotp     Mechanism = "totp"
)

// Enabled reports whether the mechanism requires a second factor.
func (m Mechanism) Enabled() bool {
	return m != MechanismDisabled
}

// ValidateMechanism checks if the given value is a recognized mechanism
func ValidateMechanism(mechanism Mechanism) error {
	switch mechanism {
	case MechanismDisabled, MechanismEmail, MechanismTotp:
		return nil
	default:
		return fmt.Errorf("invalid two-factor mechanism: %s, must be one of: %s, %s, %s",
			mechanism, MechanismDisabled, MechanismEmail, MechanismTotp)
	}
}

// Principal is the authenticated actor subject to two-factor verification.
// Identity and session handling are owned elsewhere; this subsystem only
// consumes the attributes below.
type Principal struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Mechanism Mechanism `json:"mechanism"`
}

// AuthenticatorEnrollment is one registered authenticator secret for a
// principal. Enrollment and revocation flows live outside this subsystem;
// records are read-only here.
type AuthenticatorEnrollment struct {
	ID          uuid.UUID `json:"id"`
	PrincipalID uuid.UUID `json:"principal_id"`
	Secret      string    `json:"secret"` // base32-encoded shared secret
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

package twofa

import (
	"context"
	"log/slog"
)

// Router selects the strategy configured for a principal and drives one
// round of the issue/validate protocol.
type Router struct {
	strategies map[Mechanism]Strategy
}

// NewRouter creates a router over the closed strategy set.
func NewRouter(email, authenticator Strategy) *Router {
	return &Router{
		strategies: map[Mechanism]Strategy{
			MechanismEmail: email,
			MechanismTotp:  authenticator,
		},
	}
}

// Dispatch routes on the principal's mechanism and on whether a response
// code was supplied. An empty suppliedCode opens a challenge and returns
// it; a non-empty one is validated, with nil meaning the protected
// operation may proceed.
func (r *Router) Dispatch(ctx context.Context, principal Principal, suppliedCode string) (*Challenge, error) {
	if principal.Mechanism == MechanismDisabled {
		// Callers short-circuit disabled principals before routing; hitting
		// this branch means the router was invoked outside its guard.
		slog.Warn("Challenge router invoked for principal with two-factor disabled", "principalId", principal.ID)
		return nil, nil
	}

	strategy, ok := r.strategies[principal.Mechanism]
	if !ok {
		// Data anomaly: mechanism values are constrained at write time, so
		// an unrecognized one points at corruption, not user input.
		slog.Warn("Request with a non-existent two-factor mechanism", "principalId", principal.ID, "mechanism", principal.Mechanism)
		return nil, ErrUnknownMechanism
	}

	if suppliedCode == "" {
		challenge, err := strategy.Issue(ctx, principal)
		if err != nil {
			return nil, err
		}
		return &challenge, nil
	}

	return nil, strategy.Validate(ctx, principal, suppliedCode)
}

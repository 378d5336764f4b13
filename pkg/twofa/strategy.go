package twofa

import "context"

// Strategy is one verification mechanism. Issue opens a challenge for the
// principal; Validate checks a supplied response code against it.
//
// The variant set is closed: MechanismEmail maps to EmailCodeStrategy and
// MechanismTotp to TotpStrategy, selected by the Router.
type Strategy interface {
	Issue(ctx context.Context, principal Principal) (Challenge, error)
	Validate(ctx context.Context, principal Principal, code string) error
}

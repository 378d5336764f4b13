package twofa

import (
	"context"
)

// Guard enforces the challenge/response protocol in front of protected
// operations.
type Guard struct {
	router *Router
}

// NewGuard creates a new guard over the given router
func NewGuard(router *Router) *Guard {
	return &Guard{
		router: router,
	}
}

// Verify runs one protocol round for the principal. It returns nil when the
// protected operation may proceed, a *ChallengeRequiredError when a
// challenge was just issued, and the specific rejection error otherwise.
func (g *Guard) Verify(ctx context.Context, principal Principal, suppliedCode string) error {
	challenge, err := g.router.Dispatch(ctx, principal, suppliedCode)
	if err != nil {
		return err
	}
	if challenge != nil {
		return &ChallengeRequiredError{Challenge: *challenge}
	}
	return nil
}

// Operation is any protected operation a guard can wrap.
type Operation[Req, Resp any] func(ctx context.Context, principal Principal, req Req) (Resp, error)

// GuardedOperation additionally takes the response code supplied with the
// invocation; an empty code requests a new challenge.
type GuardedOperation[Req, Resp any] func(ctx context.Context, principal Principal, suppliedCode string, req Req) (Resp, error)

// Wrap produces a guarded version of op. Principals with two-factor
// disabled go straight to op without touching the router; everyone else
// must pass verification first, and op is never invoked on a rejection
// path.
func Wrap[Req, Resp any](guard *Guard, op Operation[Req, Resp]) GuardedOperation[Req, Resp] {
	return func(ctx context.Context, principal Principal, suppliedCode string, req Req) (Resp, error) {
		if principal.Mechanism.Enabled() {
			if err := guard.Verify(ctx, principal, suppliedCode); err != nil {
				var zero Resp
				return zero, err
			}
		}
		return op(ctx, principal, req)
	}
}

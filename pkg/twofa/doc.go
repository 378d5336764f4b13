// Package twofa gates protected operations behind a second authentication
// factor.
//
// A principal carries a configured mechanism: disabled, a mailed one-time
// code, or a TOTP authenticator app. The Router picks the matching Strategy
// and drives one round of the challenge/response protocol; the Guard wraps
// protected operations so they only run once verification succeeds or is
// not required.
//
// # Basic Usage
//
//	codes := codestore.NewInMemoryCodeStore()
//	emailStrategy := twofa.NewEmailCodeStrategy(codes, notificationManager,
//		twofa.WithCodeTTL(5*time.Minute))
//	totpStrategy := twofa.NewTotpStrategy(enrollments)
//
//	guard := twofa.NewGuard(twofa.NewRouter(emailStrategy, totpStrategy))
//
//	// Wrap any operation:
//	guarded := twofa.Wrap(guard, placeOrder)
//	resp, err := guarded(ctx, principal, r.Header.Get(twofa.TwoFactorCodeHeader), req)
//
//	// Or guard a whole route group:
//	r.Use(twofa.RequireTwoFactor(guard))
//
// The first invocation without a response code issues a challenge and
// rejects the operation with instructions to resend the code in the
// X-2FA-Code header. Invocations carrying the header are validated by the
// principal's strategy.
//
// Email codes live in a codestore.CodeStore until their TTL elapses or a
// successful validation consumes them; issuing while a code is outstanding
// fails with ErrChallengePending and sends no second email. TOTP validation
// is stateless and reads the principal's most recently created active
// enrollment.
package twofa

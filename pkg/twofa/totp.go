package twofa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	defaultTotpPeriod = 30
	defaultTotpSkew   = 1
)

// TotpStrategy implements Strategy for authenticator apps. Nothing is
// persisted per challenge: validation recomputes the expected passcode from
// the principal's enrolled secret and the current time step.
type TotpStrategy struct {
	enrollments EnrollmentRepository
	period      uint
	skew        uint
}

// TotpOption defines configuration options
type TotpOption func(*TotpStrategy)

// WithTotpPeriod sets the time-step length in seconds
func WithTotpPeriod(period uint) TotpOption {
	return func(s *TotpStrategy) {
		s.period = period
	}
}

// WithTotpSkew sets how many adjacent time steps are accepted
func WithTotpSkew(skew uint) TotpOption {
	return func(s *TotpStrategy) {
		s.skew = skew
	}
}

// NewTotpStrategy creates a new authenticator-app strategy
func NewTotpStrategy(enrollments EnrollmentRepository, opts ...TotpOption) *TotpStrategy {
	strategy := &TotpStrategy{
		enrollments: enrollments,
		period:      defaultTotpPeriod,
		skew:        defaultTotpSkew,
	}

	for _, opt := range opts {
		opt(strategy)
	}

	return strategy
}

// Issue always succeeds: there is no state to create and no message to
// send, the principal reads the code off their authenticator app. The
// returned payload matches the email strategy's so callers cannot tell the
// mechanisms apart at this step.
func (s *TotpStrategy) Issue(ctx context.Context, principal Principal) (Challenge, error) {
	return newChallenge("authenticator app"), nil
}

// Validate checks the supplied passcode against the principal's most
// recently created active enrollment.
func (s *TotpStrategy) Validate(ctx context.Context, principal Principal, code string) error {
	enrollment, err := s.enrollments.FindActiveByPrincipalID(ctx, principal.ID)
	if errors.Is(err, ErrNoEnrollment) {
		// Server misconfiguration, not a user error: the principal is
		// configured for TOTP but has nothing enrolled.
		slog.Error("No active authenticator enrollment for principal", "principalId", principal.ID)
		return ErrNoEnrollment
	}
	if err != nil {
		return fmt.Errorf("failed to load authenticator enrollment: %w", err)
	}

	valid, err := totp.ValidateCustom(code, enrollment.Secret, time.Now().UTC(), totp.ValidateOpts{
		Period:    s.period,
		Skew:      s.skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if errors.Is(err, otp.ErrValidateInputInvalidLength) {
		// User input of the wrong shape, not a collaborator fault
		return ErrCodeMismatch
	}
	if err != nil {
		return fmt.Errorf("failed to validate totp passcode: %w", err)
	}
	if !valid {
		return ErrCodeMismatch
	}
	return nil
}

package twofa

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/webmenu/webmenu-auth/pkg/codestore"
	"github.com/webmenu/webmenu-auth/pkg/notification"
)

const (
	emailCodeLength = 6

	// Codes are drawn from 1-9; zero is excluded so a code never looks
	// like a truncated number when displayed.
	emailCodeDigits = "123456789"

	defaultEmailCodeTTL = 5 * time.Minute
)

// EmailCodeStrategy implements Strategy by mailing the principal a short
// numeric code held in a one-time code store until it expires or is
// consumed.
type EmailCodeStrategy struct {
	codes               codestore.CodeStore
	notificationManager *notification.NotificationManager
	codeTTL             time.Duration
}

// EmailCodeOption defines configuration options
type EmailCodeOption func(*EmailCodeStrategy)

// WithCodeTTL sets the lifetime of issued codes
func WithCodeTTL(ttl time.Duration) EmailCodeOption {
	return func(s *EmailCodeStrategy) {
		s.codeTTL = ttl
	}
}

// NewEmailCodeStrategy creates a new email code strategy
func NewEmailCodeStrategy(codes codestore.CodeStore, notificationManager *notification.NotificationManager, opts ...EmailCodeOption) *EmailCodeStrategy {
	strategy := &EmailCodeStrategy{
		codes:               codes,
		notificationManager: notificationManager,
		codeTTL:             defaultEmailCodeTTL,
	}

	for _, opt := range opts {
		opt(strategy)
	}

	return strategy
}

// Issue generates a fresh code, stores it with the configured TTL and mails
// it to the principal. An unexpired outstanding code fails the call with
// ErrChallengePending before any side effect: no new code is generated and
// no email is sent.
func (s *EmailCodeStrategy) Issue(ctx context.Context, principal Principal) (Challenge, error) {
	_, pending, err := s.codes.Get(ctx, principal.ID)
	if err != nil {
		return Challenge{}, fmt.Errorf("failed to check for pending code: %w", err)
	}
	if pending {
		return Challenge{}, ErrChallengePending
	}

	code, err := generateEmailCode()
	if err != nil {
		return Challenge{}, fmt.Errorf("failed to generate two-factor code: %w", err)
	}

	if err := s.codes.Set(ctx, principal.ID, code, s.codeTTL); err != nil {
		return Challenge{}, fmt.Errorf("failed to store two-factor code: %w", err)
	}

	err = s.notificationManager.Send(notification.TwofaCodeNotice, notification.NotificationData{
		To: principal.Email,
		Data: map[string]string{
			"Code": code,
		},
	})
	if err != nil {
		// The code was never delivered; drop it so the principal can
		// request a new one immediately instead of waiting out the TTL.
		if delErr := s.codes.Delete(ctx, principal.ID); delErr != nil {
			slog.Error("Failed to clean up undelivered code", "principalId", principal.ID, "err", delErr)
		}
		return Challenge{}, fmt.Errorf("failed to send two-factor code: %w", err)
	}

	return newChallenge("email"), nil
}

// Validate compares the supplied code with the stored one. A mismatch keeps
// the stored code so the principal can retry within the TTL window; a match
// consumes it.
func (s *EmailCodeStrategy) Validate(ctx context.Context, principal Principal, code string) error {
	stored, ok, err := s.codes.Get(ctx, principal.ID)
	if err != nil {
		return fmt.Errorf("failed to read stored code: %w", err)
	}
	if !ok {
		slog.Warn("Two-factor code expired or was never issued", "principalId", principal.ID)
		return ErrCodeExpired
	}

	if stored != code {
		return ErrCodeMismatch
	}

	if err := s.codes.Delete(ctx, principal.ID); err != nil {
		return fmt.Errorf("failed to consume two-factor code: %w", err)
	}
	return nil
}

func generateEmailCode() (string, error) {
	digits := make([]byte, emailCodeLength)
	max := big.NewInt(int64(len(emailCodeDigits)))
	for i := range digits {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		digits[i] = emailCodeDigits[n.Int64()]
	}
	return string(digits), nil
}

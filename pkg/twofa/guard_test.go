package twofa

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xlzd/gotp"
)

type orderRequest struct {
	Item string
}

type orderResponse struct {
	OrderID string
}

func TestWrap_DisabledSkipsRouter(t *testing.T) {
	email := &spyStrategy{}
	authenticator := &spyStrategy{}
	guard := NewGuard(NewRouter(email, authenticator))

	opCalls := 0
	guarded := Wrap(guard, func(ctx context.Context, principal Principal, req orderRequest) (orderResponse, error) {
		opCalls++
		return orderResponse{OrderID: "order-1"}, nil
	})

	resp, err := guarded(context.Background(), Principal{
		ID:        uuid.New(),
		Mechanism: MechanismDisabled,
	}, "", orderRequest{Item: "menu"})

	require.NoError(t, err)
	assert.Equal(t, "order-1", resp.OrderID)
	assert.Equal(t, 1, opCalls)
	assert.Zero(t, email.issueCalls+email.validateCalls)
	assert.Zero(t, authenticator.issueCalls+authenticator.validateCalls)
}

func TestWrap_ChallengeRejectsOperation(t *testing.T) {
	guard := NewGuard(NewRouter(&spyStrategy{}, &spyStrategy{}))

	opCalls := 0
	guarded := Wrap(guard, func(ctx context.Context, principal Principal, req orderRequest) (orderResponse, error) {
		opCalls++
		return orderResponse{OrderID: "order-1"}, nil
	})

	resp, err := guarded(context.Background(), Principal{
		ID:        uuid.New(),
		Mechanism: MechanismEmail,
	}, "", orderRequest{Item: "menu"})

	var challengeErr *ChallengeRequiredError
	require.ErrorAs(t, err, &challengeErr)
	assert.Equal(t, TwoFactorCodeHeader, challengeErr.Challenge.Header)
	assert.Zero(t, opCalls, "operation must not run when a challenge was issued")
	assert.Zero(t, resp.OrderID)
}

func TestWrap_RejectionNeverRunsOperation(t *testing.T) {
	email := &spyStrategy{validateErr: ErrCodeMismatch}
	guard := NewGuard(NewRouter(email, &spyStrategy{}))

	opCalls := 0
	guarded := Wrap(guard, func(ctx context.Context, principal Principal, req orderRequest) (orderResponse, error) {
		opCalls++
		return orderResponse{}, nil
	})

	_, err := guarded(context.Background(), Principal{
		ID:        uuid.New(),
		Mechanism: MechanismEmail,
	}, "000000", orderRequest{})

	assert.ErrorIs(t, err, ErrCodeMismatch)
	assert.Zero(t, opCalls)
}

func TestWrap_ValidCodeRunsOperation(t *testing.T) {
	enrollments := NewInMemoryEnrollmentRepository()
	guard := NewGuard(NewRouter(&spyStrategy{}, NewTotpStrategy(enrollments)))
	principal := Principal{ID: uuid.New(), Mechanism: MechanismTotp}

	secret := gotp.RandomSecret(16)
	enrollments.AddEnrollment(principal.ID, secret, true, time.Now().UTC())

	guarded := Wrap(guard, func(ctx context.Context, principal Principal, req orderRequest) (orderResponse, error) {
		return orderResponse{OrderID: "order-" + req.Item}, nil
	})

	// First invocation without a code opens a challenge
	_, err := guarded(context.Background(), principal, "", orderRequest{Item: "menu"})
	var challengeErr *ChallengeRequiredError
	require.ErrorAs(t, err, &challengeErr)

	// Retry carrying the authenticator passcode goes through
	passcode := gotp.NewDefaultTOTP(secret).Now()
	resp, err := guarded(context.Background(), principal, passcode, orderRequest{Item: "menu"})
	require.NoError(t, err)
	assert.Equal(t, "order-menu", resp.OrderID)
}

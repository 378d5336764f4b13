package twofa

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyStrategy records calls and returns canned results.
type spyStrategy struct {
	issueCalls    int
	validateCalls int
	lastCode      string
	issueErr      error
	validateErr   error
}

func (s *spyStrategy) Issue(ctx context.Context, principal Principal) (Challenge, error) {
	s.issueCalls++
	if s.issueErr != nil {
		return Challenge{}, s.issueErr
	}
	return newChallenge("email"), nil
}

func (s *spyStrategy) Validate(ctx context.Context, principal Principal, code string) error {
	s.validateCalls++
	s.lastCode = code
	return s.validateErr
}

func TestRouter_DisabledPassesWithoutStrategy(t *testing.T) {
	email := &spyStrategy{}
	authenticator := &spyStrategy{}
	router := NewRouter(email, authenticator)

	challenge, err := router.Dispatch(context.Background(), Principal{
		ID:        uuid.New(),
		Mechanism: MechanismDisabled,
	}, "")

	require.NoError(t, err)
	assert.Nil(t, challenge)
	assert.Zero(t, email.issueCalls)
	assert.Zero(t, authenticator.issueCalls)
}

func TestRouter_UnknownMechanism(t *testing.T) {
	router := NewRouter(&spyStrategy{}, &spyStrategy{})

	_, err := router.Dispatch(context.Background(), Principal{
		ID:        uuid.New(),
		Mechanism: Mechanism("sms"),
	}, "")

	assert.ErrorIs(t, err, ErrUnknownMechanism)
}

func TestRouter_NoCodeIssuesChallenge(t *testing.T) {
	email := &spyStrategy{}
	router := NewRouter(email, &spyStrategy{})

	challenge, err := router.Dispatch(context.Background(), Principal{
		ID:        uuid.New(),
		Mechanism: MechanismEmail,
	}, "")

	require.NoError(t, err)
	require.NotNil(t, challenge)
	assert.Equal(t, 1, email.issueCalls)
	assert.Zero(t, email.validateCalls)
}

func TestRouter_CodeGoesToValidation(t *testing.T) {
	authenticator := &spyStrategy{}
	router := NewRouter(&spyStrategy{}, authenticator)

	challenge, err := router.Dispatch(context.Background(), Principal{
		ID:        uuid.New(),
		Mechanism: MechanismTotp,
	}, "123456")

	require.NoError(t, err)
	assert.Nil(t, challenge)
	assert.Equal(t, 1, authenticator.validateCalls)
	assert.Equal(t, "123456", authenticator.lastCode)
	assert.Zero(t, authenticator.issueCalls)
}

func TestRouter_StrategyErrorsPropagate(t *testing.T) {
	issueErr := errors.New("smtp down")
	email := &spyStrategy{issueErr: issueErr}
	router := NewRouter(email, &spyStrategy{})
	principal := Principal{ID: uuid.New(), Mechanism: MechanismEmail}

	_, err := router.Dispatch(context.Background(), principal, "")
	assert.ErrorIs(t, err, issueErr)

	email.validateErr = ErrCodeMismatch
	_, err = router.Dispatch(context.Background(), principal, "000000")
	assert.ErrorIs(t, err, ErrCodeMismatch)
}

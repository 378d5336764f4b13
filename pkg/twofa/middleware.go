package twofa

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	apperrors "github.com/webmenu/webmenu-auth/pkg/errors"
)

// contextKey is a value for use with context.WithValue. It's used as
// a pointer so it fits in an interface{} without allocation.
type contextKey struct {
	name string
}

func (k *contextKey) String() string {
	return "twofa context value " + k.name
}

var (
	PrincipalCtxKey = &contextKey{"Principal"}
)

// WithPrincipal returns a context carrying the principal.
func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, PrincipalCtxKey, principal)
}

// PrincipalFromContext extracts the principal set by the authentication
// collaborator.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(PrincipalCtxKey).(Principal)
	return principal, ok
}

// ErrorResponse is the JSON body of a rejected protected request.
type ErrorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
	Msg   string `json:"msg,omitempty"`
}

// RequireTwoFactor gates every request in the chain behind the
// challenge/response protocol. The principal must already be in the request
// context; the response code, if any, travels in the X-2FA-Code header. The
// wrapped handler runs only for disabled principals or after successful
// validation.
func RequireTwoFactor(guard *Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				slog.Error("Failed to get principal from request context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, ErrorResponse{Error: "unauthorized"})
				return
			}

			if !principal.Mechanism.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			err := guard.Verify(r.Context(), principal, r.Header.Get(TwoFactorCodeHeader))
			if err == nil {
				next.ServeHTTP(w, r)
				return
			}

			renderRejection(w, r, principal, err)
		})
	}
}

func renderRejection(w http.ResponseWriter, r *http.Request, principal Principal, err error) {
	var challengeErr *ChallengeRequiredError
	if errors.As(err, &challengeErr) {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, ErrorResponse{
			Error: "2fa required",
			Hint:  challengeErr.Challenge.Hint,
			Msg:   challengeErr.Challenge.Message,
		})
		return
	}

	coded := toCodedError(err)
	if coded.Code == apperrors.ErrCodeInternal || coded.Code == apperrors.ErrCodeDependencyUnavailable {
		// Collaborator outage or logic fault, distinct in logs from
		// user-caused rejections.
		slog.Error("Two-factor verification failed on a dependency", "principalId", principal.ID, "err", err)
	}

	render.Status(r, coded.HTTPStatusCode())
	render.JSON(w, r, ErrorResponse{Error: coded.Message})
}

// toCodedError maps core sentinel errors onto the boundary error taxonomy.
// Messages deliberately do not reveal which part of a mismatch failed.
func toCodedError(err error) *apperrors.Error {
	switch {
	case errors.Is(err, ErrChallengePending):
		return apperrors.New(apperrors.ErrCode2FAPending, "You already have unfinished 2fa confirmation.")
	case errors.Is(err, ErrCodeExpired):
		return apperrors.New(apperrors.ErrCode2FAExpired, "Your code is already expired. Request a new one.")
	case errors.Is(err, ErrCodeMismatch):
		return apperrors.New(apperrors.ErrCode2FAInvalid, "Not valid 2fa data.")
	case errors.Is(err, ErrNoEnrollment):
		return apperrors.New(apperrors.ErrCode2FANotEnrolled, "Something went wrong. Contact the site administrator.")
	case errors.Is(err, ErrUnknownMechanism):
		return apperrors.New(apperrors.ErrCode2FAUnknownMechanism, "Something went wrong. Contact the site administrator.")
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeDependencyUnavailable, "Two-factor verification is temporarily unavailable.")
	}
}

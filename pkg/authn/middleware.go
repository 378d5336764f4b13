// Package authn bridges the external authentication collaborator to the
// verification subsystem: it verifies bearer tokens and resolves the
// authenticated principal into the request context. Login and session
// management happen elsewhere; by the time two-factor verification runs,
// the first factor is already established.
package authn

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/webmenu/webmenu-auth/pkg/token"
	"github.com/webmenu/webmenu-auth/pkg/twofa"
)

// Verifier verifies bearer tokens from the Authorization header or the
// accessToken cookie.
func Verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return jwtauth.Verify(ja, jwtauth.TokenFromHeader, TokenFromCookie)(next)
	}
}

func TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie("accessToken")
	if err != nil {
		return ""
	}
	return cookie.Value
}

// PrincipalMiddleware resolves the token's principal through the directory
// and stores it in the request context for the two-factor guard.
func PrincipalMiddleware(directory twofa.PrincipalDirectory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				http.Error(w, "missing jwt", http.StatusUnauthorized)
				return
			}

			principalID, err := token.PrincipalIDFromClaims(jwt.MapClaims(claims))
			if err != nil {
				slog.Warn("Token carries no usable principal id", "err", err)
				http.Error(w, "invalid claims", http.StatusUnauthorized)
				return
			}

			principal, err := directory.FindPrincipalByID(r.Context(), principalID)
			if errors.Is(err, twofa.ErrPrincipalNotFound) {
				http.Error(w, "unknown principal", http.StatusUnauthorized)
				return
			}
			if err != nil {
				slog.Error("Failed to resolve principal", "principalId", principalID, "err", err)
				http.Error(w, "failed to resolve principal", http.StatusInternalServerError)
				return
			}

			ctx := twofa.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

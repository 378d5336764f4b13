package authn

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webmenu/webmenu-auth/pkg/token"
	"github.com/webmenu/webmenu-auth/pkg/twofa"
)

const testSecret = "test-jwt-secret"

func setupAuthServer(t *testing.T, directory twofa.PrincipalDirectory) *httptest.Server {
	t.Helper()

	tokenAuth := jwtauth.New("HS256", []byte(testSecret), nil)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(Verifier(tokenAuth))
		r.Use(jwtauth.Authenticator(tokenAuth))
		r.Use(PrincipalMiddleware(directory))
		r.Get("/me", func(w http.ResponseWriter, req *http.Request) {
			principal, ok := twofa.PrincipalFromContext(req.Context())
			if !ok {
				http.Error(w, "no principal", http.StatusInternalServerError)
				return
			}
			w.Write([]byte(principal.Email))
		})
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func TestPrincipalMiddleware_ResolvesPrincipal(t *testing.T) {
	directory := twofa.NewInMemoryPrincipalDirectory()
	principal := twofa.Principal{
		ID:        uuid.New(),
		Email:     "mailed@example.com",
		Mechanism: twofa.MechanismEmail,
	}
	directory.AddPrincipal(principal)
	server := setupAuthServer(t, directory)

	accessToken, err := token.NewJwtService(testSecret).CreateAccessToken(principal.ID)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+accessToken.Token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPrincipalMiddleware_TokenFromCookie(t *testing.T) {
	directory := twofa.NewInMemoryPrincipalDirectory()
	principal := twofa.Principal{
		ID:        uuid.New(),
		Email:     "mailed@example.com",
		Mechanism: twofa.MechanismEmail,
	}
	directory.AddPrincipal(principal)
	server := setupAuthServer(t, directory)

	accessToken, err := token.NewJwtService(testSecret).CreateAccessToken(principal.ID)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/me", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: accessToken.Token})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPrincipalMiddleware_NoToken(t *testing.T) {
	server := setupAuthServer(t, twofa.NewInMemoryPrincipalDirectory())

	resp, err := http.Get(server.URL + "/me")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPrincipalMiddleware_UnknownPrincipal(t *testing.T) {
	server := setupAuthServer(t, twofa.NewInMemoryPrincipalDirectory())

	accessToken, err := token.NewJwtService(testSecret).CreateAccessToken(uuid.New())
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+accessToken.Token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPrincipalMiddleware_WrongSigningKey(t *testing.T) {
	server := setupAuthServer(t, twofa.NewInMemoryPrincipalDirectory())

	accessToken, err := token.NewJwtService("another-secret").CreateAccessToken(uuid.New())
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+accessToken.Token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

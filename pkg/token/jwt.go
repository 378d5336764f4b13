package token

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	defaultAccessTokenExpiry = 1 * time.Hour
	defaultIssuer            = "webmenu-auth"
)

// Jwt mints and parses the HS256 access tokens the service accepts. The
// principal identifier travels in custom_claims so the HTTP layer can
// resolve the principal through the directory.
type Jwt struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// Option defines configuration options
type Option func(*Jwt)

// WithExpiry sets the access token lifetime
func WithExpiry(expiry time.Duration) Option {
	return func(j *Jwt) {
		j.Expiry = expiry
	}
}

// WithIssuer sets the token issuer claim
func WithIssuer(issuer string) Option {
	return func(j *Jwt) {
		j.Issuer = issuer
	}
}

// NewJwtService creates a new JWT service with the given secret
func NewJwtService(secret string, opts ...Option) *Jwt {
	jwtSvc := &Jwt{
		Secret: secret,
		Expiry: defaultAccessTokenExpiry,
		Issuer: defaultIssuer,
	}

	for _, opt := range opts {
		opt(jwtSvc)
	}

	return jwtSvc
}

// AccessToken is a signed token and its expiry instant
type AccessToken struct {
	Token  string
	Expiry time.Time
}

type claims struct {
	CustomClaims map[string]interface{} `json:"custom_claims"`
	jwt.RegisteredClaims
}

// CreateAccessToken mints an access token for the principal
func (j *Jwt) CreateAccessToken(principalID uuid.UUID) (AccessToken, error) {
	expiry := time.Now().UTC().Add(j.Expiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		CustomClaims: map[string]interface{}{
			"principal_id": principalID.String(),
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(expiry),
			Subject:   principalID.String(),
		},
	})

	signed, err := token.SignedString([]byte(j.Secret))
	if err != nil {
		slog.Error("Failed to sign access token", "err", err)
		return AccessToken{}, err
	}

	return AccessToken{Token: signed, Expiry: expiry}, nil
}

// ParseTokenStr parses and validates a signed token string
func (j *Jwt) ParseTokenStr(tokenStr string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(j.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return token, nil
}

// PrincipalIDFromClaims extracts the principal identifier from parsed claims
func PrincipalIDFromClaims(mapClaims jwt.MapClaims) (uuid.UUID, error) {
	customClaims, ok := mapClaims["custom_claims"].(map[string]interface{})
	if !ok {
		return uuid.Nil, fmt.Errorf("missing custom claims")
	}
	idStr, ok := customClaims["principal_id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("missing principal_id in token")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid principal_id format: %w", err)
	}
	return id, nil
}

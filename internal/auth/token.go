package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload. Only the subject id is trusted; role and state
// are always reloaded from the store.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenVerifier signs and verifies HS256 tokens.
type TokenVerifier struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenVerifier creates a verifier for the given shared secret. A zero ttl
// issues tokens without expiry.
func NewTokenVerifier(secret string, ttl time.Duration) *TokenVerifier {
	return &TokenVerifier{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the given user id.
func (v *TokenVerifier) Issue(userID string) (string, error) {
	now := v.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if v.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(v.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw and returns the subject id.
func (v *TokenVerifier) Verify(raw string) (string, error) {
	if raw == "" {
		return "", model.NewDomainError(model.KindUnauthorized, "missing token")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", model.NewDomainError(model.KindUnauthorized, "token expired")
		}
		return "", model.NewDomainError(model.KindUnauthorized, "invalid token")
	}
	if claims.UserID == "" {
		return "", model.NewDomainError(model.KindUnauthorized, "invalid token")
	}

	return claims.UserID, nil
}

// PrincipalLoader resolves a token subject to a user record.
type PrincipalLoader interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// Authenticator turns a bearer token into an active principal.
type Authenticator struct {
	verifier *TokenVerifier
	users    PrincipalLoader
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(verifier *TokenVerifier, users PrincipalLoader) *Authenticator {
	return &Authenticator{verifier: verifier, users: users}
}

// Authenticate verifies raw and loads its subject. Unknown and inactive users
// are rejected.
func (a *Authenticator) Authenticate(ctx context.Context, raw string) (model.Principal, error) {
	id, err := a.verifier.Verify(raw)
	if err != nil {
		return model.Principal{}, err
	}

	user, err := a.users.GetByID(ctx, id)
	if err != nil {
		return model.Principal{}, fmt.Errorf("failed to load principal: %w", err)
	}
	if user == nil || !user.IsActive {
		return model.Principal{}, model.NewDomainError(model.KindUnauthorized, "invalid or inactive user")
	}

	return user.Principal(), nil
}

package httpapi

import (
	"gavel-auction-service/internal/config"
	apperrors "gavel-auction-service/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenVerifier validates bearer tokens and extracts the caller identity.
// Token issuance happens outside this service; only HS256 tokens whose
// subject is the user's UUID are accepted.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a verifier from the configured signing secret
func NewTokenVerifier(cfg *config.Config) *TokenVerifier {
	return &TokenVerifier{secret: []byte(cfg.Auth.JWTSecret)}
}

// Verify validates the token and returns the authenticated user's ID
func (v *TokenVerifier) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return uuid.Nil, apperrors.NewUnauthorizedError("invalid or expired token")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, apperrors.NewUnauthorizedError("token has no subject")
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, apperrors.NewUnauthorizedError("token subject is not a valid user id")
	}

	return userID, nil
}

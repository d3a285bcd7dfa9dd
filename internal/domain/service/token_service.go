package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims for session tokens.
// The account id is carried in the subject claim.
type Claims struct {
	AccountID uuid.UUID `json:"-"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating session tokens.
type TokenService interface {
	// GenerateToken signs a new token for the account.
	GenerateToken(accountID uuid.UUID) (string, error)

	// ValidateToken checks signature and expiry and returns the claims.
	ValidateToken(tokenString string) (*Claims, error)

	// HashToken returns the digest under which the token is stored.
	HashToken(tokenString string) string
}

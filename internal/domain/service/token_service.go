package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims for the access tokens. The subject is the
// username, matching the confidentiality model: tokens carry identity, user
// lookup happens on every request.
type Claims struct {
	jwt.RegisteredClaims
}

// Username returns the token subject.
func (c *Claims) Username() string {
	return c.Subject
}

// TokenService defines the interface for generating and validating bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateToken creates a signed, time-bounded access token for a username.
	GenerateToken(username string) (string, error)

	// ValidateToken checks the signature and expiry of a token string.
	// It fails with domain errors distinguishing expired from invalid tokens.
	ValidateToken(tokenString string) (*Claims, error)

	// AccessTokenTTL returns the configured token lifetime.
	AccessTokenTTL() time.Duration
}

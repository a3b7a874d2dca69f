package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTypeAccess marks bearer tokens accepted by the admin routes.
const TokenTypeAccess = "access"

// Claims defines the custom claims for admin tokens. The subject holds the admin ID.
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	Type  string   `json:"type"`
	jwt.RegisteredClaims
}

// AdminID parses the subject claim.
func (c *Claims) AdminID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService defines the interface for issuing and validating admin JWTs.
type TokenService interface {
	// GenerateToken signs an access token for the admin with the given roles.
	GenerateToken(adminID uuid.UUID, roles []string) (string, error)

	// ValidateToken checks signature, expiry and type, returning the parsed claims.
	ValidateToken(tokenString string) (*Claims, error)

	// GetTokenDuration returns the configured lifetime of issued tokens.
	GetTokenDuration() time.Duration
}

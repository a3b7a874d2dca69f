// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"bizdir/config"
	"bizdir/internal/domain/service"
	"bizdir/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrWrongTokenType is returned when a well-signed token is not an access token.
var ErrWrongTokenType = errors.New("token is not an access token")

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte        // HMAC key for signing and verifying tokens.
	ttl    time.Duration // Lifetime of issued tokens.
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if cfg.Auth == nil || cfg.Auth.TokenTTL <= 0 {
		return nil, errors.New("auth.tokenTTL must be positive")
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Access),
		ttl:    cfg.Auth.TokenTTL,
		now:    time.Now,
	}, nil
}

// GenerateToken signs an HS256 access token whose subject is the admin ID.
func (s *jwtService) GenerateToken(adminID uuid.UUID, roles []string) (string, error) {
	now := s.now()
	claims := &service.Claims{
		Roles: roles,
		Type:  service.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// ValidateToken verifies signature, algorithm, expiry and token type.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(_ *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}

	if claims.Type != service.TokenTypeAccess {
		return nil, ErrWrongTokenType
	}
	if _, err := claims.AdminID(); err != nil {
		return nil, errors.Wrap(err, "token subject is not an admin id")
	}

	return claims, nil
}

// GetTokenDuration returns the configured lifetime of issued tokens.
func (s *jwtService) GetTokenDuration() time.Duration {
	return s.ttl
}

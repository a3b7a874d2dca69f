package usecase

import (
	"context"

	"bizdir/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterAdminInput holds the data required to register an admin.
type RegisterAdminInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginAdminInput holds the credentials for email/password login.
type LoginAdminInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthOutput is returned after registration and login.
type AuthOutput struct {
	Admin *entity.Admin
	Token string
}

// AdminUsecase defines admin account operations.
type AdminUsecase interface {
	// Register creates an admin and issues a token.
	Register(ctx context.Context, input *RegisterAdminInput) (*AuthOutput, error)

	// Login verifies credentials and issues a token.
	Login(ctx context.Context, input *LoginAdminInput) (*AuthOutput, error)

	// GetProfile returns the admin identified by a validated token.
	GetProfile(ctx context.Context, adminID uuid.UUID) (*entity.Admin, error)
}

package repository

import (
	"context"

	"bizdir/internal/domain/entity"
	"bizdir/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for admin persistence.
var (
	// ErrAdminNotFound is returned when no admin matches the lookup key.
	ErrAdminNotFound = errors.New("admin not found")
	// ErrAdminEmailTaken is returned when an admin with the same email already exists.
	ErrAdminEmailTaken = errors.New("admin email already in use")
)

// AdminRepository defines the interface for admin account storage.
type AdminRepository interface {
	// Create persists a new admin.
	// Returns ErrAdminEmailTaken when the email is already registered.
	Create(ctx context.Context, admin *entity.Admin) error

	// FindByEmail retrieves an admin by lowercase email.
	FindByEmail(ctx context.Context, email string) (*entity.Admin, error)

	// FindByID retrieves an admin by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error)
}

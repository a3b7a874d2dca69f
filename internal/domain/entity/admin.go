package entity

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a credential holder allowed to mutate the directory.
type Admin struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the admin.
	Name         string    // Display name.
	Email        string    // Login identifier, stored lowercase and unique.
	PasswordHash string    // bcrypt hash; never leaves the service layer.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

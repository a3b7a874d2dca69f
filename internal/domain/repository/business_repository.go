// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"bizdir/internal/domain/entity"
	"bizdir/internal/domain/geo"
	"bizdir/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for business persistence.
var (
	// ErrBusinessNotFound is returned when no business matches the given ID.
	ErrBusinessNotFound = errors.New("business not found")
	// ErrBusinessEmailTaken is returned when another business already uses the email.
	ErrBusinessEmailTaken = errors.New("business email already in use")
)

// BusinessRepository defines the interface for business-related database operations.
type BusinessRepository interface {
	// Create persists a new business. ID and timestamps are assigned by the caller.
	Create(ctx context.Context, business *entity.Business) error

	// FindByID retrieves a business by its unique ID.
	// Returns ErrBusinessNotFound if no record exists.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error)

	// List returns one page of businesses matching filter, newest first, plus the total match count.
	List(ctx context.Context, filter entity.BusinessFilter, page entity.PageRequest) ([]*entity.Business, int64, error)

	// FindWithin returns businesses whose coordinates fall inside area, nearest first.
	// At most limit records are returned; records without coordinates never match.
	FindWithin(ctx context.Context, area geo.Cap, limit int) ([]*entity.Business, error)

	// Update overwrites every stored field of an existing business.
	// Returns ErrBusinessNotFound if the record vanished.
	Update(ctx context.Context, business *entity.Business) error

	// Delete removes a business by its ID.
	// Returns ErrBusinessNotFound if no record exists.
	Delete(ctx context.Context, id uuid.UUID) error
}

package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"bizdir/internal/domain/entity"
	domainerrors "bizdir/internal/domain/errors"
	"bizdir/internal/domain/service"

	"github.com/google/uuid"
)

// ListBusinessesInput carries raw query values; parsing and defaults belong to the usecase.
type ListBusinessesInput struct {
	Page     string
	Limit    string
	Category string
	Verified string
}

// ListBusinessesOutput is one page of businesses plus totals across all pages.
type ListBusinessesOutput struct {
	Businesses []*entity.Business
	Count      int64
	Pages      int
}

// NearbyInput carries raw query values for a radius search.
type NearbyInput struct {
	Lng      string
	Lat      string
	Distance string // Kilometres; empty means the configured default.
}

// BusinessInput is the writable part of a business. Nil fields are left untouched on update.
type BusinessInput struct {
	BusinessName   *string                `json:"businessName"`
	Description    *string                `json:"description"`
	Verified       *bool                  `json:"verified"`
	ContactNumber  *string                `json:"contactNumber"`
	Email          *string                `json:"email"`
	Category       *string                `json:"category"`
	Website        *string                `json:"website"`
	Location       json.RawMessage        `json:"location"` // Object, or an object encoded as a JSON string.
	SocialMedia    *entity.SocialMedia    `json:"socialMedia"`
	OperatingHours *entity.OperatingHours `json:"operatingHours"`
}

// UnmarshalJSON accepts verified as a JSON boolean or as a string such as "true" or "0",
// matching what form submissions send.
func (in *BusinessInput) UnmarshalJSON(data []byte) error {
	type plain BusinessInput
	aux := struct {
		*plain
		Verified json.RawMessage `json:"verified"`
	}{plain: (*plain)(in)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	in.Verified = nil
	raw := bytes.TrimSpace(aux.Verified)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		in.Verified = &b

		return nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return ErrInvalidVerified
	}

	verified, err := ParseVerified(str)
	if err != nil {
		return err
	}
	in.Verified = &verified

	return nil
}

// ErrInvalidVerified rejects a verified value that is not a boolean.
var ErrInvalidVerified = domainerrors.ErrInvalidRequest.WithMessage("Verified must be true or false")

// ParseVerified reads a submitted verified flag with strconv.ParseBool rules.
func ParseVerified(raw string) (bool, error) {
	verified, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, ErrInvalidVerified
	}

	return verified, nil
}

// BusinessUsecase defines the directory operations.
type BusinessUsecase interface {
	// ListBusinesses returns one page of businesses, newest first.
	ListBusinesses(ctx context.Context, input *ListBusinessesInput) (*ListBusinessesOutput, error)

	// GetBusiness retrieves a single business by its ID string.
	GetBusiness(ctx context.Context, id string) (*entity.Business, error)

	// GetNearby returns businesses within a radius of a point, nearest first.
	GetNearby(ctx context.Context, input *NearbyInput) ([]*entity.Business, error)

	// CreateBusiness validates and stores a new business; image may be nil.
	CreateBusiness(ctx context.Context, input *BusinessInput, image *service.Image) (*entity.Business, error)

	// UpdateBusiness merges input into an existing business; image may be nil.
	UpdateBusiness(ctx context.Context, id string, input *BusinessInput, image *service.Image) (*entity.Business, error)

	// DeleteBusiness removes a business and its uploaded image.
	DeleteBusiness(ctx context.Context, id string) error

	// GetBusinessQRCode renders a PNG QR code linking to the public business page.
	GetBusinessQRCode(ctx context.Context, id string) ([]byte, error)
}

// ParseBusinessID returns the UUID of a business path parameter.
func ParseBusinessID(id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}

	return parsed, true
}

package service

import (
	"github.com/google/uuid"
)

// QRCodeService renders scannable links to public business pages.
type QRCodeService interface {
	// GenerateBusinessQR returns a PNG encoding the public URL of the business.
	GenerateBusinessQR(businessID uuid.UUID) ([]byte, error)

	// BusinessURL returns the URL the code for businessID points to.
	BusinessURL(businessID uuid.UUID) string
}

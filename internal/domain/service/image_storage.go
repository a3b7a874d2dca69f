package service

import (
	"context"
	"io"
	"time"

	"bizdir/internal/errors"
)

// ErrImageNotFound is returned by Open when no image lives at the path.
var ErrImageNotFound = errors.New("image not found")

// Image is an uploaded profile image ready to be stored.
type Image struct {
	Filename    string // Name chosen by the client; only its extension is kept.
	ContentType string // Sniffed MIME type.
	Size        int64
	Data        io.Reader
}

// ImageAttributes describes a stored image for serving.
type ImageAttributes struct {
	ContentType string
	Size        int64
	ModTime     time.Time
}

// ImageStorage keeps business profile images. Paths are public URLs such as
// "/uploads/businesses/business-1700000000000-123456789.png".
type ImageStorage interface {
	// Save stores img under a generated name and returns its public path.
	Save(ctx context.Context, img *Image) (string, error)

	// Exists reports whether a stored image lives at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes the image at path.
	Delete(ctx context.Context, path string) error

	// Open returns a reader for the image at path. The caller must close it.
	Open(ctx context.Context, path string) (io.ReadCloser, *ImageAttributes, error)
}

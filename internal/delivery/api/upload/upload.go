// Package upload extracts profile images from multipart requests.
package upload

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	domainerrors "bizdir/internal/domain/errors"
	"bizdir/internal/domain/service"
	"bizdir/internal/errors"
	"bizdir/internal/util"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
)

// FieldProfileImage is the multipart field carrying the business image.
const FieldProfileImage = "profileImage"

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// IsMultipart reports whether the request carries a multipart form.
func IsMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// Image reads the file in field, if any. A request without the file yields nil.
// Both the extension and the sniffed content must name an allowed image type.
func Image(c echo.Context, field string, maxSize int64) (*service.Image, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidRequest, err.Error())
	}

	if fh.Size > maxSize {
		return nil, tooLarge(maxSize)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return nil, domainerrors.ErrInvalidImage
	}

	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read uploaded file")
	}
	if int64(len(data)) > maxSize {
		return nil, tooLarge(maxSize)
	}

	mt := mimetype.Detect(data)
	if !allowedTypes[mt.String()] {
		return nil, domainerrors.ErrInvalidImage
	}

	return &service.Image{
		Filename:    fh.Filename,
		ContentType: mt.String(),
		Size:        int64(len(data)),
		Data:        bytes.NewReader(data),
	}, nil
}

func tooLarge(maxSize int64) error {
	return domainerrors.ErrImageTooLarge.WithDetails("limit is " + util.FormatBytes(maxSize))
}

package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	deliverycontext "bizdir/internal/delivery/context"
	domainerrors "bizdir/internal/domain/errors"
	"bizdir/internal/domain/service"
	"bizdir/internal/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UploadHandlerParams holds dependencies for UploadHandler, injected by Fx.
type UploadHandlerParams struct {
	fx.In

	Storage service.ImageStorage
	Logger  *slog.Logger
}

// UploadHandler serves stored profile images.
type UploadHandler struct {
	storage service.ImageStorage
	logger  *slog.Logger
}

// NewUploadHandler is the constructor for UploadHandler.
func NewUploadHandler(params UploadHandlerParams) *UploadHandler {
	return &UploadHandler{storage: params.Storage, logger: params.Logger}
}

// ServeImage streams the image stored under the request path.
func (h *UploadHandler) ServeImage(c echo.Context) error {
	ctx := c.Request().Context()

	rc, attrs, err := h.storage.Open(ctx, c.Request().URL.Path)
	if errors.Is(err, service.ErrImageNotFound) {
		return domainerrors.ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to open image")
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil {
			deliverycontext.GetLoggerOrDefault(ctx, h.logger).Warn("Failed to close image reader", slog.Any("error", closeErr))
		}
	}()

	header := c.Response().Header()
	header.Set(echo.HeaderContentLength, strconv.FormatInt(attrs.Size, 10))
	if !attrs.ModTime.IsZero() {
		header.Set(echo.HeaderLastModified, attrs.ModTime.UTC().Format(http.TimeFormat))
	}
	// Stored names are unique per upload, so content never changes.
	header.Set("Cache-Control", "public, max-age=86400")

	contentType := attrs.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	return c.Stream(http.StatusOK, contentType, rc)
}

// Package handler contains the HTTP handlers for the directory API.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"bizdir/config"
	"bizdir/internal/delivery/api/response"
	"bizdir/internal/delivery/api/upload"
	domainerrors "bizdir/internal/domain/errors"
	"bizdir/internal/domain/service"
	"bizdir/internal/errors"
	"bizdir/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BusinessHandlerParams holds dependencies for BusinessHandler, injected by Fx.
type BusinessHandlerParams struct {
	fx.In

	BusinessUC usecase.BusinessUsecase
	Config     *config.Config
	Logger     *slog.Logger
}

// BusinessHandler serves the business directory endpoints.
type BusinessHandler struct {
	businessUC  usecase.BusinessUsecase
	maxFileSize int64
	logger      *slog.Logger
}

// NewBusinessHandler is the constructor for BusinessHandler.
func NewBusinessHandler(params BusinessHandlerParams) *BusinessHandler {
	return &BusinessHandler{
		businessUC:  params.BusinessUC,
		maxFileSize: params.Config.Uploads.MaxFileSize,
		logger:      params.Logger,
	}
}

// ListBusinesses handles GET /api/businesses.
func (h *BusinessHandler) ListBusinesses(c echo.Context) error {
	output, err := h.businessUC.ListBusinesses(c.Request().Context(), &usecase.ListBusinessesInput{
		Page:     c.QueryParam("page"),
		Limit:    c.QueryParam("limit"),
		Category: c.QueryParam("category"),
		Verified: c.QueryParam("verified"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.List(c, output.Businesses, int(output.Count), output.Pages)
}

// GetNearby handles GET /api/businesses/near.
func (h *BusinessHandler) GetNearby(c echo.Context) error {
	businesses, err := h.businessUC.GetNearby(c.Request().Context(), &usecase.NearbyInput{
		Lng:      c.QueryParam("lng"),
		Lat:      c.QueryParam("lat"),
		Distance: c.QueryParam("distance"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Counted(c, businesses, len(businesses))
}

// GetBusiness handles GET /api/businesses/:id.
func (h *BusinessHandler) GetBusiness(c echo.Context) error {
	business, err := h.businessUC.GetBusiness(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, business)
}

// GetBusinessQRCode handles GET /api/businesses/:id/qr.
func (h *BusinessHandler) GetBusinessQRCode(c echo.Context) error {
	png, err := h.businessUC.GetBusinessQRCode(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// CreateBusiness handles POST /api/businesses.
func (h *BusinessHandler) CreateBusiness(c echo.Context) error {
	input, image, err := h.bindBusiness(c)
	if err != nil {
		return err
	}

	business, err := h.businessUC.CreateBusiness(c.Request().Context(), input, image)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, business)
}

// UpdateBusiness handles PUT /api/businesses/:id.
func (h *BusinessHandler) UpdateBusiness(c echo.Context) error {
	input, image, err := h.bindBusiness(c)
	if err != nil {
		return err
	}

	business, err := h.businessUC.UpdateBusiness(c.Request().Context(), c.Param("id"), input, image)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, business)
}

// DeleteBusiness handles DELETE /api/businesses/:id.
func (h *BusinessHandler) DeleteBusiness(c echo.Context) error {
	if err := h.businessUC.DeleteBusiness(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{})
}

// bindBusiness reads a business from a JSON body or a multipart form with an optional image.
func (h *BusinessHandler) bindBusiness(c echo.Context) (*usecase.BusinessInput, *service.Image, error) {
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationForm) {
		values, err := c.FormParams()
		if err != nil {
			return nil, nil, domainerrors.ErrInvalidRequest.WithMessage("Invalid request body")
		}
		input, err := businessFromForm(values)

		return input, nil, err
	}

	if !upload.IsMultipart(c) {
		input := new(usecase.BusinessInput)
		if err := (&echo.DefaultBinder{}).BindBody(c, input); err != nil {
			var appErr *domainerrors.BaseError
			if errors.As(err, &appErr) {
				return nil, nil, appErr
			}

			return nil, nil, domainerrors.ErrInvalidRequest.WithMessage("Invalid request body")
		}

		return input, nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, domainerrors.ErrInvalidRequest.WithMessage("Invalid multipart form")
	}

	input, err := businessFromForm(form.Value)
	if err != nil {
		return nil, nil, err
	}

	image, err := upload.Image(c, upload.FieldProfileImage, h.maxFileSize)
	if err != nil {
		return nil, nil, err
	}

	return input, image, nil
}

// businessFromForm maps multipart fields onto a BusinessInput. Nested objects arrive either
// as JSON strings ("socialMedia") or in bracket notation ("socialMedia[facebook]").
func businessFromForm(values url.Values) (*usecase.BusinessInput, error) {
	input := &usecase.BusinessInput{
		BusinessName:  formString(values, "businessName"),
		Description:   formString(values, "description"),
		ContactNumber: formString(values, "contactNumber"),
		Email:         formString(values, "email"),
		Category:      formString(values, "category"),
		Website:       formString(values, "website"),
	}

	if raw := formString(values, "verified"); raw != nil {
		verified, err := usecase.ParseVerified(*raw)
		if err != nil {
			return nil, err
		}
		input.Verified = &verified
	}

	// The usecase parses string-encoded locations itself.
	if raw := formString(values, "location"); raw != nil && *raw != "" {
		encoded, err := json.Marshal(*raw)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode location")
		}
		input.Location = encoded
	}

	if err := decodeFormObject(values, "socialMedia", &input.SocialMedia); err != nil {
		return nil, err
	}
	if err := decodeFormObject(values, "operatingHours", &input.OperatingHours); err != nil {
		return nil, err
	}

	return input, nil
}

func formString(values url.Values, key string) *string {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return nil
	}

	return &v[0]
}

// decodeFormObject fills dst from field root, given as a JSON string or as bracket keys.
func decodeFormObject(values url.Values, root string, dst any) error {
	invalid := domainerrors.ErrInvalidRequest.WithMessage("Invalid " + root + " data format")

	if raw := formString(values, root); raw != nil {
		if strings.TrimSpace(*raw) == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(*raw), dst); err != nil {
			return invalid
		}

		return nil
	}

	tree := map[string]any{}
	for key, v := range values {
		path, ok := bracketPath(key, root)
		if !ok || len(v) == 0 {
			continue
		}
		if !setPath(tree, path, v[0]) {
			return invalid
		}
	}
	if len(tree) == 0 {
		return nil
	}

	encoded, err := json.Marshal(tree)
	if err != nil {
		return errors.Wrap(err, "failed to encode form object")
	}
	if err := json.Unmarshal(encoded, dst); err != nil {
		return invalid
	}

	return nil
}

// bracketPath splits "root[a][b]" into ["a", "b"].
func bracketPath(key, root string) ([]string, bool) {
	rest, ok := strings.CutPrefix(key, root)
	if !ok || !strings.HasPrefix(rest, "[") || !strings.HasSuffix(rest, "]") {
		return nil, false
	}

	parts := strings.Split(rest[1:len(rest)-1], "][")
	for _, p := range parts {
		if p == "" {
			return nil, false
		}
	}

	return parts, true
}

// setPath stores value at path, reporting false when a leaf and a branch collide.
func setPath(tree map[string]any, path []string, value string) bool {
	node := tree
	for _, p := range path[:len(path)-1] {
		next, exists := node[p]
		if !exists {
			child := map[string]any{}
			node[p] = child
			node = child

			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return false
		}
		node = child
	}

	leaf := path[len(path)-1]
	if _, exists := node[leaf]; exists {
		if _, isBranch := node[leaf].(map[string]any); isBranch {
			return false
		}
	}
	node[leaf] = value

	return true
}

package handler

import (
	"log/slog"
	"net/http"

	"bizdir/internal/delivery/api/middleware"
	"bizdir/internal/delivery/api/response"
	"bizdir/internal/domain/entity"
	domainerrors "bizdir/internal/domain/errors"
	"bizdir/internal/errors"
	"bizdir/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AdminUC usecase.AdminUsecase
	Logger  *slog.Logger
}

// AuthHandler serves admin registration, login and profile.
type AuthHandler struct {
	adminUC usecase.AdminUsecase
	logger  *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		adminUC: params.AdminUC,
		logger:  params.Logger,
	}
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// AdminResponse is the public view of an admin. Token is set only by register and login.
type AdminResponse struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Token string    `json:"token,omitempty"`
}

func newAdminResponse(admin *entity.Admin, token string) *AdminResponse {
	return &AdminResponse{
		ID:    admin.ID,
		Name:  admin.Name,
		Email: admin.Email,
		Token: token,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterAdminInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrInvalidRequest.WithMessage("Invalid registration input")
	}

	output, err := h.adminUC.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, newAdminResponse(output.Admin, output.Token))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrInvalidRequest.WithMessage("Invalid login input")
	}
	// Missing credentials get the same answer as wrong ones.
	if err := c.Validate(&req); err != nil {
		return domainerrors.ErrInvalidCredentials
	}

	output, err := h.adminUC.Login(c.Request().Context(), &usecase.LoginAdminInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAdminResponse(output.Admin, output.Token))
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(c echo.Context) error {
	adminID, ok := middleware.GetAdminID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	admin, err := h.adminUC.GetProfile(c.Request().Context(), adminID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAdminResponse(admin, ""))
}

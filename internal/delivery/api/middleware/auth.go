package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "bizdir/internal/delivery/context"
	"bizdir/internal/domain/entity"
	domainerrors "bizdir/internal/domain/errors"
	"bizdir/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	keyAdminID = "adminID"
	keyRoles   = "roles"
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	Logger       *slog.Logger
}

// AuthMiddleware guards admin routes with bearer tokens.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: params.TokenService, logger: params.Logger}
}

// Authenticate validates the bearer token and stores the admin identity on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		tokenString = strings.TrimSpace(tokenString)
		if !found || tokenString == "" {
			return domainerrors.ErrUnauthorized
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Rejected bearer token", slog.Any("error", err))

			return domainerrors.ErrTokenInvalid
		}

		adminID, err := claims.AdminID()
		if err != nil {
			return domainerrors.ErrTokenInvalid
		}

		c.Set(keyAdminID, adminID)
		c.Set(keyRoles, claims.Roles)
		c.SetRequest(c.Request().WithContext(deliverycontext.WithAdminID(c.Request().Context(), adminID)))

		return next(c)
	}
}

// RequireRole rejects authenticated callers lacking role. It must run after Authenticate.
func (m *AuthMiddleware) RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, ok := GetRoles(c)
			if !ok || !entity.RolesFromStrings(roles).Contains(role) {
				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}

// GetAdminID returns the admin ID set by Authenticate.
func GetAdminID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(keyAdminID).(uuid.UUID)

	return id, ok
}

// GetRoles returns the token roles set by Authenticate.
func GetRoles(c echo.Context) ([]string, bool) {
	roles, ok := c.Get(keyRoles).([]string)

	return roles, ok
}

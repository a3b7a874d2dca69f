// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bizdir/config"
	"bizdir/internal/delivery/api/middleware"
	"bizdir/internal/delivery/api/router/handler"
	"bizdir/internal/domain/entity"
	domainerrors "bizdir/internal/domain/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
)

// RouterParams holds dependencies for the router, injected by Fx.
type RouterParams struct {
	fx.In

	BusinessHandler  *handler.BusinessHandler
	AuthHandler      *handler.AuthHandler
	UploadHandler    *handler.UploadHandler
	AuthMiddleware   *middleware.AuthMiddleware
	RateLimiterStore echomiddleware.RateLimiterStore
	Config           *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	businessHandler  *handler.BusinessHandler
	authHandler      *handler.AuthHandler
	uploadHandler    *handler.UploadHandler
	authMiddleware   *middleware.AuthMiddleware
	rateLimiterStore echomiddleware.RateLimiterStore
	config           *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		businessHandler:  params.BusinessHandler,
		authHandler:      params.AuthHandler,
		uploadHandler:    params.UploadHandler,
		authMiddleware:   params.AuthMiddleware,
		rateLimiterStore: params.RateLimiterStore,
		config:           params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Root)
	e.GET("/health", handler.HealthCheck)

	// Stored profile images
	e.GET(r.config.Uploads.PublicPrefix+"/*", r.uploadHandler.ServeImage)

	requireAdmin := []echo.MiddlewareFunc{
		r.authMiddleware.Authenticate,
		r.authMiddleware.RequireRole(entity.RoleAdmin),
	}

	businessGroup := e.Group("/api/businesses")
	{
		// Static segments are matched before :id.
		businessGroup.GET("", r.businessHandler.ListBusinesses)
		businessGroup.GET("/near", r.businessHandler.GetNearby)
		businessGroup.GET("/:id", r.businessHandler.GetBusiness)
		businessGroup.GET("/:id/qr", r.businessHandler.GetBusinessQRCode)

		businessGroup.POST("", r.businessHandler.CreateBusiness, requireAdmin...)
		businessGroup.PUT("/:id", r.businessHandler.UpdateBusiness, requireAdmin...)
		businessGroup.DELETE("/:id", r.businessHandler.DeleteBusiness, requireAdmin...)
	}

	authGroup := e.Group("/api/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login, r.loginLimiter()...)
		authGroup.GET("/profile", r.authHandler.Profile, r.authMiddleware.Authenticate)
	}
}

// loginLimiter throttles login attempts per client IP when enabled.
func (r *router) loginLimiter() []echo.MiddlewareFunc {
	if !r.config.RateLimit.Enabled {
		return nil
	}

	return []echo.MiddlewareFunc{
		echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
			Store: r.rateLimiterStore,
			IdentifierExtractor: func(c echo.Context) (string, error) {
				return c.RealIP(), nil
			},
			ErrorHandler: func(_ echo.Context, _ error) error {
				return domainerrors.ErrForbidden
			},
			DenyHandler: func(_ echo.Context, _ string, _ error) error {
				return domainerrors.ErrTooManyRequests
			},
		}),
	}
}

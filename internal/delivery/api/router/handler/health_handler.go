package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports that the process is serving.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Root answers GET / so a browser hitting the API sees it is up.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "API is working"})
}

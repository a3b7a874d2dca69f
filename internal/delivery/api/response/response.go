// Package response renders the JSON envelope shared by every API endpoint.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the body of every JSON response.
// Error is either a single message or a list of field messages.
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
	Count   *int `json:"count,omitempty"`
	Pages   *int `json:"pages,omitempty"`
}

// Success returns a successful response carrying data.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, Envelope{Success: true, Data: data})
}

// Created returns a 201 response carrying data.
func Created(c echo.Context, data any) error {
	return Success(c, http.StatusCreated, data)
}

// List returns a page of items together with the total count and page count.
func List(c echo.Context, data any, count, pages int) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Count: &count, Pages: &pages})
}

// Counted returns items together with their count.
func Counted(c echo.Context, data any, count int) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Count: &count})
}

// Error returns an error response with a single message.
func Error(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, Envelope{Success: false, Error: message})
}

// Errors returns an error response listing several messages.
func Errors(c echo.Context, statusCode int, messages []string) error {
	return c.JSON(statusCode, Envelope{Success: false, Error: messages})
}

// InternalServerError returns the generic 500 response.
func InternalServerError(c echo.Context) error {
	return Error(c, http.StatusInternalServerError, "Server Error")
}

package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"marketplace-api/internal/apperr"
	"marketplace-api/internal/dto"

	"github.com/labstack/echo/v4"
)

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, dto.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondList(c echo.Context, message string, data any, count int) error {
	return c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Message: message,
		Count:   &count,
		Data:    data,
	})
}

// respondError maps the error taxonomy onto HTTP statuses. Internal failures
// reach the client as the generic fallback message; detail is only logged.
func respondError(c echo.Context, err error, fallback string) error {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperr.ErrUnauthenticated):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	default:
		log.Printf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	return c.JSON(status, dto.Response{
		Success: false,
		Message: message,
		Error:   http.StatusText(status),
	})
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperr.Validation("invalid id")
	}
	return uint(id), nil
}

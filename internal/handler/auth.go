package handler

import (
	"net/http"

	"marketplace-api/internal/dto"
	"marketplace-api/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.authService.Register(ctx, req)
	if err != nil {
		return respondError(c, err, "failed to register user")
	}

	return respond(c, http.StatusCreated, "user registered successfully", user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.authService.Login(ctx, req)
	if err != nil {
		return respondError(c, err, "failed to log in")
	}

	return respond(c, http.StatusOK, "login successful", result)
}

// Logout is stateless; the client discards its token.
func (h *AuthHandler) Logout(c echo.Context) error {
	return respond(c, http.StatusOK, "logout successful", nil)
}

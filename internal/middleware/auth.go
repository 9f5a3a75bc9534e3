package middleware

import (
	"net/http"
	"strings"

	"marketplace-api/internal/dto"
	"marketplace-api/internal/model"
	"marketplace-api/internal/service"

	"github.com/labstack/echo/v4"
)

const userContextKey = "user"

// Auth verifies the bearer token, loads the user row and stashes it in the
// echo context for handlers.
func Auth(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return c.JSON(http.StatusUnauthorized, dto.Response{
					Success: false,
					Message: "access denied, no token provided",
				})
			}

			user, err := authService.VerifyToken(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, dto.Response{
					Success: false,
					Message: "invalid token",
				})
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireAdmin guards admin-only routes. It must run after Auth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return c.JSON(http.StatusUnauthorized, dto.Response{
					Success: false,
					Message: "authentication required",
				})
			}
			if user.Role != model.RoleAdmin {
				return c.JSON(http.StatusForbidden, dto.Response{
					Success: false,
					Message: "admin access required",
				})
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user set by Auth, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

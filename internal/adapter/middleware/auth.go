package middleware

import (
	"net/http"
	"strings"

	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/user"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

const currentUserKey = "current_user"

// JWTAuth resolves the Authorization bearer token to an active user and
// stores it on the request context. Requests without a valid token get 401.
func JWTAuth(authUC *auth.Usecase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if !strings.HasPrefix(raw, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			u, err := authUC.CurrentUser(c.Request().Context(), strings.TrimPrefix(raw, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			c.Set(currentUserKey, u)
			return next(c)
		}
	}
}

// RequireRole gates a route group to the given roles. Must run after JWTAuth.
func RequireRole(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := CurrentUser(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
			}
			for _, r := range roles {
				if u.Role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient role"})
		}
	}
}

// CurrentUser returns the authenticated user set by JWTAuth.
func CurrentUser(c echo.Context) (*user.User, bool) {
	u, ok := c.Get(currentUserKey).(*user.User)
	return u, ok
}

// SetCurrentUser injects an identity directly; test helper for handlers
// exercised without the JWT middleware.
func SetCurrentUser(c echo.Context, u *user.User) {
	c.Set(currentUserKey, u)
}

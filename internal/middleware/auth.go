package middleware

import (
	"net/http"

	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/Sodstar/mountain-pos/pkg/errs"
	"github.com/Sodstar/mountain-pos/pkg/response"
	"github.com/Sodstar/mountain-pos/pkg/utils"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// JWT verifies the bearer token issued by the identity provider.
func JWT(secret string) echo.MiddlewareFunc {
	return echomiddleware.JWTWithConfig(echomiddleware.JWTConfig{
		SigningKey: []byte(secret),
		ErrorHandlerWithContext: func(err error, c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, response.ErrorResponse{
				Status:  "error",
				Message: "Invalid or expired JWT",
			})
		},
	})
}

// RequireRole lets a request through only when its token carries one of roles.
// It must run after JWT.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, _, role, ok := utils.ExtractTokenUser(c)
			if !ok {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			for _, allowed := range roles {
				if domain.Role(role) == allowed {
					return next(c)
				}
			}

			return response.WriteErrorResponse(c, errs.ErrForbidden, nil)
		}
	}
}

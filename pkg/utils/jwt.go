package utils

import (
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

// ExtractTokenUser reads the claims stored by the JWT middleware. ok is false
// when the request carries no valid token.
func ExtractTokenUser(c echo.Context) (userID string, name string, role string, ok bool) {
	user, isToken := c.Get("user").(*jwt.Token)
	if !isToken || !user.Valid {
		return
	}

	claims, isMap := user.Claims.(jwt.MapClaims)
	if !isMap {
		return
	}

	userID, _ = claims["userID"].(string)
	name, _ = claims["name"].(string)
	role, _ = claims["role"].(string)

	return userID, name, role, true
}

package handler

import (
	"net/http"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"canteen/internal/model"
)

const dateLayout = "2006-01-02"

// userClaims is the authenticated identity pulled from the JWT middleware.
type userClaims struct {
	UserID uint
	Email  string
	Role   string
}

// currentClaims extracts the authenticated user's identity from the token the
// JWT middleware stored on the context.
func currentClaims(c echo.Context) (*userClaims, error) {
	token, ok := c.Get("user").(*jwtv5.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	mapClaims, ok := token.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	userID, ok := mapClaims["user_id"].(float64)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)
	if role == "" {
		role = model.RoleStaff
	}

	return &userClaims{UserID: uint(userID), Email: email, Role: role}, nil
}

// parseDateParam parses a YYYY-MM-DD path or query value.
func parseDateParam(value string) (time.Time, error) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	return date, nil
}

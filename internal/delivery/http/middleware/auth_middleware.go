// Package middleware contains the Echo middleware for the HTTP delivery.
package middleware

import (
	"strings"

	domainerrors "invoicer/internal/domain/errors"
	"invoicer/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// userIDContextKey is the Echo context key holding the authenticated owner id.
const userIDContextKey = "userID"

// AuthMiddleware authenticates requests by their bearer access token.
// The token subject is resolved to a stored user on every request, so a token
// for a deleted account stops working immediately.
type AuthMiddleware struct {
	userUsecase usecase.UserUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(userUsecase usecase.UserUsecase) *AuthMiddleware {
	return &AuthMiddleware{userUsecase: userUsecase}
}

// Authenticate validates the Authorization header and stores the resolved
// user's id on the context for handlers.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")

			return err
		}

		user, err := m.userUsecase.ResolveToken(c.Request().Context(), tokenString)
		if err != nil {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")

			return err
		}

		c.Set(userIDContextKey, user.ID)

		return next(c)
	}
}

// UserID returns the authenticated owner id set by Authenticate.
func UserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(userIDContextKey).(uuid.UUID)

	return userID, ok
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", domainerrors.ErrMissingToken.WrapMessage("authorization header is missing")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return "", domainerrors.ErrMissingToken.WrapMessage("authorization header is not a bearer token")
	}

	return tokenString, nil
}

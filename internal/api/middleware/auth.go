package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/orgtree/hierarchy-api/internal/core/domain"
	"github.com/orgtree/hierarchy-api/internal/core/ports"
)

// Auth validates the bearer access token and injects the identity claims into
// the request context. Every failure surfaces as 401 through the central
// error handler: missing or unparsable headers as "Invalid token", expired
// and malformed tokens with their own messages.
func Auth(creds ports.CredentialService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.ErrTokenInvalid
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return domain.ErrTokenInvalid
			}

			claims, err := creds.VerifyAccessToken(parts[1])
			if err != nil {
				return err
			}

			c.Set("user_id", claims.UserID)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}

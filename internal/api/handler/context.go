package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/orgtree/hierarchy-api/internal/core/domain"
	"github.com/orgtree/hierarchy-api/internal/core/ports"
)

// ctxClaims extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: both claims must be
// present, their absence means the middleware did not run or the token lacked
// an identity.
func ctxClaims(c echo.Context) (ports.TokenClaims, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return ports.TokenClaims{}, domain.ErrTokenInvalid
	}
	return ports.TokenClaims{UserID: userID, Role: role}, nil
}

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/orgtree/hierarchy-api/internal/api/handler"
	"github.com/orgtree/hierarchy-api/internal/core/domain"
)

// errorsResponse is the canonical error envelope for all API errors.
type errorsResponse struct {
	Errors []string `json:"errors"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"errors": ["<message>", ...]}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msgs := resolveError(err, log, c)
		_ = c.JSON(code, errorsResponse{Errors: msgs})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, []string) {
	// Schema validation failures carry one message per failed field.
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Messages
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, []string{fmt.Sprintf("%v", he.Message)}
	}

	// Known domain errors map to deterministic HTTP codes and client messages.
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, []string{"User not found"}
	case errors.Is(err, domain.ErrBossNotFound):
		return http.StatusNotFound, []string{"User with provided bossId does not exist"}
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, []string{"Username already exists"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, []string{"Invalid credentials"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, []string{"Forbidden"}
	case errors.Is(err, domain.ErrSelfBoss):
		return http.StatusBadRequest, []string{"User cannot be his own boss"}
	case errors.Is(err, domain.ErrInvalidHierarchy):
		return http.StatusBadRequest, []string{"Reassignment would create a cycle in the hierarchy"}
	case errors.Is(err, domain.ErrAdminBoss):
		return http.StatusBadRequest, []string{"Administrator cannot have a boss"}
	case errors.Is(err, domain.ErrAdminWithBoss):
		return http.StatusBadRequest, []string{"Administrator cannot have a boss, please remove bossId"}
	case errors.Is(err, domain.ErrBossRequired):
		return http.StatusBadRequest, []string{"Boss is required for this role, please provide a valid bossId"}
	case errors.Is(err, domain.ErrRegistrationRole):
		return http.StatusBadRequest, []string{"Invalid role. Valid roles are `Administrator` and `Regular User` during registration"}
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, []string{"Token expired"}
	case errors.Is(err, domain.ErrTokenMalformed):
		return http.StatusUnauthorized, []string{"Malformed token"}
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, []string{"Invalid token"}
	case errors.Is(err, domain.ErrCycleDetected):
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("boss hierarchy integrity fault")
		return http.StatusInternalServerError, []string{"Internal server error"}
	case errors.Is(err, domain.ErrInvalidRole):
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("role value outside the known enum")
		return http.StatusInternalServerError, []string{"Internal server error"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, []string{"Internal server error"}
}

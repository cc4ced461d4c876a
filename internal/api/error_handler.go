package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pokerface/networking-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	// Missing referenced entities.
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrCardNotFound):
		return http.StatusNotFound, "card not found"
	case errors.Is(err, domain.ErrTableNotFound):
		return http.StatusNotFound, "table not found"
	case errors.Is(err, domain.ErrRequestNotFound):
		return http.StatusNotFound, "reveal request not found"
	case errors.Is(err, domain.ErrNotificationNotFound):
		return http.StatusNotFound, "notification not found"

	// Actor lacks permission for the requested transition.
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden, err.Error()

	// Operation invalid for the current state machine position.
	case errors.Is(err, domain.ErrRequestNotPending):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrTableClosed):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrAlreadyRevealed):
		return http.StatusConflict, err.Error()

	// Resource exhausted.
	case errors.Is(err, domain.ErrTableFull):
		return http.StatusConflict, err.Error()

	// Structurally nonsensical request.
	case errors.Is(err, domain.ErrSelfReveal):
		return http.StatusUnprocessableEntity, err.Error()

	// Auth.
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/only/profile-portal/internal/core/authform"
	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/web"
	"github.com/only/profile-portal/internal/web/i18n"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a JSON envelope {"error": "<message>"} for machine endpoints and
//     the page shell for everything else. translator may be nil, in which
//     case every error is JSON.
func NewHTTPErrorHandler(log zerolog.Logger, translator *i18n.Translator) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		if translator != nil && c.Echo().Renderer != nil && isPagePath(c.Request().URL.Path) {
			l := translator.For(c.Request().Header.Get("Accept-Language"))
			if err := c.Render(code, web.PageError, web.NewErrorPage(l, code, msg)); err == nil {
				return
			}
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidSession),
		errors.Is(err, domain.ErrSessionRevoked),
		errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "session expired"
	case errors.Is(err, authform.ErrSubmitting):
		return http.StatusConflict, "login already in progress"
	case errors.Is(err, domain.ErrDuplicateCredential):
		return http.StatusConflict, "credential already exists"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// isPagePath reports whether path belongs to the HTML side of the portal.
func isPagePath(path string) bool {
	for _, prefix := range []string{"/api/", "/health", "/metrics", "/swagger/"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/only/profile-portal/internal/api/middleware"
	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/core/service"
)

// ctxSession returns the session the Session middleware resolved. Handlers
// behind RequireAuthenticated can rely on it being present.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess := middleware.CurrentSession(c)
	if sess == nil || !sess.Identity.IsAuthenticated {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}
	return sess, nil
}

// attemptMeta describes the request an attempt came from.
func attemptMeta(c echo.Context, source string) service.AttemptMeta {
	return service.AttemptMeta{
		Source:    source,
		ClientIP:  c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/core/ports"
	"github.com/only/profile-portal/internal/core/service"
)

// Context keys set by Session.
const (
	ContextKeySession  = "session"
	ContextKeyIdentity = "identity"
)

// Session resolves the session cookie and injects the visitor's identity into
// the context. Visitors without a usable session continue as anonymous.
func Session(sessions ports.SessionService, cookieName string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyIdentity, domain.SessionIdentity{})

			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sess, err := sessions.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				if !service.IsSessionError(err) {
					log.Error().Err(err).Str("path", c.Path()).Msg("session lookup failed")
				}
				return next(c)
			}

			c.Set(ContextKeySession, sess)
			c.Set(ContextKeyIdentity, sess.Identity)
			return next(c)
		}
	}
}

// Identity returns the identity injected by Session.
func Identity(c echo.Context) domain.SessionIdentity {
	id, _ := c.Get(ContextKeyIdentity).(domain.SessionIdentity)
	return id
}

// CurrentSession returns the session injected by Session, or nil.
func CurrentSession(c echo.Context) *domain.Session {
	sess, _ := c.Get(ContextKeySession).(*domain.Session)
	return sess
}

// RequireAuthenticated redirects anonymous visitors to redirectTo.
func RequireAuthenticated(redirectTo string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !Identity(c).IsAuthenticated {
				return c.Redirect(http.StatusSeeOther, redirectTo)
			}
			return next(c)
		}
	}
}

// RequireAnonymous redirects authenticated visitors to redirectTo.
func RequireAnonymous(redirectTo string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Identity(c).IsAuthenticated {
				return c.Redirect(http.StatusSeeOther, redirectTo)
			}
			return next(c)
		}
	}
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/only/profile-portal/internal/core/domain"
)

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// setSessionCookie stores token. Remembered sessions persist across browser
// restarts; others live until the browser closes.
func (cc CookieConfig) setSessionCookie(c echo.Context, token string, sess *domain.Session, now time.Time) {
	cookie := &http.Cookie{
		Name:     cc.Name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if sess.Remember {
		cookie.Expires = sess.ExpiresAt
		cookie.MaxAge = int(sess.ExpiresAt.Sub(now).Seconds())
	}
	c.SetCookie(cookie)
}

func (cc CookieConfig) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     cc.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

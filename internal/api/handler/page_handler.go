package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/only/profile-portal/internal/api/metrics"
	"github.com/only/profile-portal/internal/api/middleware"
	"github.com/only/profile-portal/internal/core/authform"
	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/core/ports"
	"github.com/only/profile-portal/internal/web"
	"github.com/only/profile-portal/internal/web/i18n"
)

const headerAcceptLanguage = "Accept-Language"

// PageHandler serves the HTML pages and plays the session coordinator: it
// routes visitors between the login form and the profile page.
type PageHandler struct {
	auth       ports.Authenticator
	journal    ports.AttemptJournal
	sessions   ports.SessionService
	translator *i18n.Translator
	cookie     CookieConfig
	delay      time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

// PageConfig groups PageHandler's dependencies. Journal may be nil.
type PageConfig struct {
	Authenticator ports.Authenticator
	Journal       ports.AttemptJournal
	Sessions      ports.SessionService
	Translator    *i18n.Translator
	Cookie        CookieConfig
	Delay         time.Duration
	Log           zerolog.Logger
}

func NewPageHandler(cfg PageConfig) *PageHandler {
	return &PageHandler{
		auth:       cfg.Authenticator,
		journal:    cfg.Journal,
		sessions:   cfg.Sessions,
		translator: cfg.Translator,
		cookie:     cfg.Cookie,
		delay:      cfg.Delay,
		log:        cfg.Log.With().Str("component", "pages").Logger(),
		now:        time.Now,
	}
}

func (h *PageHandler) localizer(c echo.Context) *i18n.Localizer {
	return h.translator.For(c.Request().Header.Get(headerAcceptLanguage))
}

// Home handles GET / by sending the visitor to the page matching their
// session state.
func (h *PageHandler) Home(c echo.Context) error {
	if middleware.Identity(c).IsAuthenticated {
		return c.Redirect(http.StatusSeeOther, "/profile")
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

// ShowLogin handles GET /login.
func (h *PageHandler) ShowLogin(c echo.Context) error {
	return h.renderLogin(c, http.StatusOK, authform.Input{}, authform.State{})
}

// SubmitLogin handles POST /login.
func (h *PageHandler) SubmitLogin(c echo.Context) error {
	var in authform.Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	var identity *domain.SessionIdentity
	form := authform.New(
		authenticatorFor(h.auth, h.journal, attemptMeta(c, domain.SourceWeb)),
		func(id domain.SessionIdentity) { identity = &id },
		authform.WithDelay(h.delay),
	)

	st, err := form.Submit(in)
	if err != nil {
		return err
	}

	if len(st.FieldErrors) > 0 {
		for field := range st.FieldErrors {
			metrics.FormValidationErrorsTotal.WithLabelValues(string(field)).Inc()
		}
		return h.renderLogin(c, http.StatusUnprocessableEntity, in, st)
	}

	if identity == nil {
		return h.renderLogin(c, http.StatusForbidden, in, st)
	}

	token, sess, err := h.sessions.Issue(*identity, in.SavePassword)
	if err != nil {
		return err
	}
	h.cookie.setSessionCookie(c, token, sess, h.now())
	metrics.SessionsIssuedTotal.WithLabelValues(strconv.FormatBool(sess.Remember)).Inc()

	h.log.Info().
		Str("login", identity.Identifier).
		Bool("remember", sess.Remember).
		Msg("logged in")

	return c.Redirect(http.StatusSeeOther, "/profile")
}

// ShowProfile handles GET /profile.
func (h *PageHandler) ShowProfile(c echo.Context) error {
	profile := web.NewProfile(middleware.Identity(c), nil)
	return c.Render(http.StatusOK, web.PageProfile, profile.Page(h.localizer(c)))
}

// Logout handles POST /logout, the profile view's logout action.
func (h *PageHandler) Logout(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	var revokeErr error
	profile := web.NewProfile(sess.Identity, func() {
		revokeErr = h.sessions.Revoke(c.Request().Context(), sess)
		h.cookie.clearSessionCookie(c)
	})
	profile.LogOut()

	if revokeErr != nil {
		h.log.Error().Err(revokeErr).Str("login", sess.Identity.Identifier).Msg("session revocation failed")
	}
	metrics.LogoutsTotal.Inc()
	h.log.Info().Str("login", sess.Identity.Identifier).Msg("logged out")

	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *PageHandler) renderLogin(c echo.Context, status int, in authform.Input, st authform.State) error {
	l := h.localizer(c)
	return c.Render(status, web.PageLogin, web.LoginPage{
		BasePage: web.NewBasePage(l, i18n.TitleLogin),
		Form:     web.NewAuthFormView(l, in, st),
	})
}

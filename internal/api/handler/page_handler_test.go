package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/only/profile-portal/internal/api/middleware"
	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/web/i18n"
)

const testCookie = "portal_session"

func newTestPageHandler(t *testing.T, sessions *stubSessions, journal *stubJournal) *PageHandler {
	t.Helper()
	cfg := PageConfig{
		Authenticator: newTestAuthenticator(t),
		Sessions:      sessions,
		Translator:    i18n.MustNew(),
		Cookie:        CookieConfig{Name: testCookie},
		Log:           zerolog.Nop(),
	}
	if journal != nil {
		cfg.Journal = journal
	}
	return NewPageHandler(cfg)
}

func submitLogin(t *testing.T, h *PageHandler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	e := newTestEcho(t)
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	if err := h.SubmitLogin(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	return nil
}

func TestPageHandler_SubmitLogin_Success(t *testing.T) {
	journal := &stubJournal{}
	h := newTestPageHandler(t, newTestSessions(), journal)

	rec := submitLogin(t, h, url.Values{"login": {"steve.jobs@example.com"}, "password": {"password"}})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/profile" {
		t.Fatalf("expected redirect to /profile, got %q", loc)
	}
	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected a session cookie")
	}
	if cookie.MaxAge != 0 {
		t.Fatalf("unremembered session should be a browser-session cookie, got Max-Age %d", cookie.MaxAge)
	}
	if recs := journal.all(); len(recs) != 1 || recs[0].Source != domain.SourceWeb {
		t.Fatalf("unexpected journal records: %+v", recs)
	}
}

func TestPageHandler_SubmitLogin_RememberPersistsCookie(t *testing.T) {
	h := newTestPageHandler(t, newTestSessions(), nil)

	rec := submitLogin(t, h, url.Values{
		"login":        {"steve.jobs@example.com"},
		"password":     {"password"},
		"savePassword": {"true"},
	})

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("expected a session cookie")
	}
	if cookie.MaxAge <= 0 {
		t.Fatalf("remembered session should persist, got Max-Age %d", cookie.MaxAge)
	}
}

func TestPageHandler_SubmitLogin_RequiredFields(t *testing.T) {
	journal := &stubJournal{}
	h := newTestPageHandler(t, newTestSessions(), journal)

	rec := submitLogin(t, h, url.Values{"login": {"steve.jobs@example.com"}})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Count(body, "Required field") != 1 {
		t.Fatalf("expected exactly one required notice:\n%s", body)
	}
	if len(journal.all()) != 0 {
		t.Fatal("empty fields must not reach the authenticator")
	}
	if sessionCookie(rec) != nil {
		t.Fatal("no session expected")
	}
}

func TestPageHandler_SubmitLogin_UnknownUser(t *testing.T) {
	h := newTestPageHandler(t, newTestSessions(), nil)

	rec := submitLogin(t, h, url.Values{"login": {"nobody@example.com"}, "password": {"x"}})

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "user nobody@example.com does not exist") {
		t.Fatalf("expected server notice:\n%s", body)
	}
	if !strings.Contains(body, `value="nobody@example.com"`) {
		t.Fatalf("login should be preserved:\n%s", body)
	}
	if sessionCookie(rec) != nil {
		t.Fatal("no session expected")
	}
}

func TestPageHandler_Home(t *testing.T) {
	h := newTestPageHandler(t, newTestSessions(), nil)
	e := newTestEcho(t)

	cases := []struct {
		name     string
		identity domain.SessionIdentity
		want     string
	}{
		{"anonymous", domain.SessionIdentity{}, "/login"},
		{"authenticated", domain.Authenticated("steve.jobs@example.com"), "/profile"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			c.Set(middleware.ContextKeyIdentity, tc.identity)

			if err := h.Home(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if loc := rec.Header().Get(echo.HeaderLocation); loc != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, loc)
			}
		})
	}
}

func TestPageHandler_ShowProfile(t *testing.T) {
	h := newTestPageHandler(t, newTestSessions(), nil)
	e := newTestEcho(t)
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/profile", nil), rec)
	c.Set(middleware.ContextKeyIdentity, domain.Authenticated("steve.jobs@example.com"))

	if err := h.ShowProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "steve.jobs@example.com") {
		t.Fatalf("unexpected profile page (%d):\n%s", rec.Code, rec.Body.String())
	}
}

func TestPageHandler_Logout(t *testing.T) {
	sessions := newTestSessions()
	h := newTestPageHandler(t, sessions, nil)
	_, sess, err := sessions.Issue(domain.Authenticated("steve.jobs@example.com"), false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	e := newTestEcho(t)
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/logout", nil), rec)
	c.Set(middleware.ContextKeySession, sess)
	c.Set(middleware.ContextKeyIdentity, sess.Identity)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0].ID != sess.ID {
		t.Fatalf("expected the session to be revoked once, got %d", len(sessions.revoked))
	}
	if cookie := sessionCookie(rec); cookie == nil || cookie.MaxAge >= 0 {
		t.Fatalf("expected the cookie to be cleared, got %+v", cookie)
	}
}

func TestPageHandler_ShowLogin_AcceptLanguage(t *testing.T) {
	h := newTestPageHandler(t, newTestSessions(), nil)
	e := newTestEcho(t)

	cases := []struct {
		header string
		want   string
	}{
		{"ru-RU,ru;q=0.9", "Войти"},
		{"en-US", "Sign in"},
		{"", "Sign in"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		if tc.header != "" {
			req.Header.Set(headerAcceptLanguage, tc.header)
		}
		rec := httptest.NewRecorder()

		if err := h.ShowLogin(e.NewContext(req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if !strings.Contains(rec.Body.String(), tc.want) {
			t.Fatalf("Accept-Language %q: expected %q in page:\n%s", tc.header, tc.want, rec.Body.String())
		}
	}
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/core/ports"
	"github.com/only/profile-portal/internal/core/service"
)

// AuthHandler exposes the mocked login endpoint as JSON.
type AuthHandler struct {
	auth    ports.Authenticator
	journal ports.AttemptJournal
	delay   time.Duration
}

// NewAuthHandler builds an AuthHandler. journal may be nil.
func NewAuthHandler(auth ports.Authenticator, journal ports.AttemptJournal, delay time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, journal: journal, delay: delay}
}

type authRequest struct {
	Login        string `json:"login"`
	Password     string `json:"password"`
	SavePassword bool   `json:"savePassword"`
}

type authData struct {
	Login        string `json:"login"`
	SavePassword bool   `json:"savePassword"`
}

type authResponse struct {
	Status       int      `json:"status"`
	ErrorMessage string   `json:"errorMessage,omitempty"`
	Data         authData `json:"data"`
}

// Authenticate checks a login attempt after the simulated network delay.
//
// @Summary      Check credentials
// @Description  Answers 202 for a registered login with the right password and 403 otherwise. The password is never echoed.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authRequest   true  "Login attempt"
// @Success      202   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  authResponse
// @Router       /api/v1/auth [post]
func (h *AuthHandler) Authenticate(c echo.Context) error {
	var req authRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	auth := authenticatorFor(h.auth, h.journal, attemptMeta(c, domain.SourceAPI))
	outcome := service.Await(auth, domain.LoginAttempt{
		Identifier:     req.Login,
		Secret:         req.Password,
		RememberSecret: req.SavePassword,
	}, h.delay)

	return c.JSON(outcome.StatusCode(), authResponse{
		Status:       outcome.StatusCode(),
		ErrorMessage: outcome.ErrorMessage,
		Data: authData{
			Login:        outcome.Attempt.Identifier,
			SavePassword: outcome.Attempt.RememberSecret,
		},
	})
}

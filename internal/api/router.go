package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/only/profile-portal/docs"
	"github.com/only/profile-portal/internal/api/handler"
	"github.com/only/profile-portal/internal/api/middleware"
	"github.com/only/profile-portal/internal/core/ports"
	"github.com/only/profile-portal/internal/web"
	"github.com/only/profile-portal/internal/web/i18n"
)

// Dependencies is everything NewRouter wires together. Journal, Registry and
// the entries of Health are optional.
type Dependencies struct {
	Authenticator ports.Authenticator
	Journal       ports.AttemptJournal
	Sessions      ports.SessionService
	Renderer      *web.Renderer
	Translator    *i18n.Translator
	Cookie        handler.CookieConfig
	AuthDelay     time.Duration
	Health        map[string]handler.Pinger
	Log           zerolog.Logger

	// Registry receives the HTTP metrics and backs /metrics. The default
	// Prometheus registry is used when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = deps.Renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log, deps.Translator)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.Session(deps.Sessions, deps.Cookie.Name, deps.Log))

	// --- Handlers ---
	pages := handler.NewPageHandler(handler.PageConfig{
		Authenticator: deps.Authenticator,
		Journal:       deps.Journal,
		Sessions:      deps.Sessions,
		Translator:    deps.Translator,
		Cookie:        deps.Cookie,
		Delay:         deps.AuthDelay,
		Log:           deps.Log,
	})
	authHandler := handler.NewAuthHandler(deps.Authenticator, deps.Journal, deps.AuthDelay)
	healthHandler := handler.NewHealthHandler(deps.Health)

	anonymous := middleware.RequireAnonymous("/profile")
	authenticated := middleware.RequireAuthenticated("/login")

	// --- Pages ---
	e.GET("/", pages.Home)
	e.GET("/login", pages.ShowLogin, anonymous)
	e.POST("/login", pages.SubmitLogin, anonymous)
	e.GET("/profile", pages.ShowProfile, authenticated)
	e.POST("/logout", pages.Logout, authenticated)

	// --- API ---
	v1 := e.Group("/api/v1")
	v1.POST("/auth", authHandler.Authenticate)

	// --- Health probes, metrics and docs ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	log = log.With().Str("component", "http").Logger()
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

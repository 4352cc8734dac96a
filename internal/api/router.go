package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/marketplace/identity-api/docs"
	"github.com/marketplace/identity-api/internal/api/handler"
	"github.com/marketplace/identity-api/internal/api/middleware"
	"github.com/marketplace/identity-api/internal/core/domain"
	"github.com/marketplace/identity-api/internal/core/ports"
)

// Dependencies is everything the HTTP layer needs from the composition root.
type Dependencies struct {
	AuthService ports.AuthService
	JWTSecret   string
	Log         zerolog.Logger
	Probes      []handler.Probe
	// Registry receives the HTTP metrics and serves /metrics. Nil means the
	// default Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

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
		Subsystem:  "identity",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	dashboardHandler := handler.NewDashboardHandler()
	authMiddleware := middleware.Auth(deps.JWTSecret, deps.AuthService)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login, middleware.OptionalAuth(deps.JWTSecret, deps.AuthService))
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Landing areas ---
	e.GET(domain.RouteDashboard, dashboardHandler.Dashboard, authMiddleware)
	admin := e.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/dashboard", dashboardHandler.AdminDashboard)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.Log, deps.Probes...)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

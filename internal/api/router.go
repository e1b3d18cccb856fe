package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/vetclinic/user-service/docs"
	"github.com/vetclinic/user-service/internal/api/handler"
	"github.com/vetclinic/user-service/internal/api/middleware"
	"github.com/vetclinic/user-service/internal/core/domain"
	"github.com/vetclinic/user-service/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Log         zerolog.Logger
	AuthService ports.AuthService
	UserService ports.UserService
	Tokens      ports.TokenVerifier
	Users       middleware.UserLoader
	Readiness   []handler.Dependency
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// HTTP collectors live in a per-router registry; /metrics serves it
	// together with the default one that promauto registers into.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "users",
		Subsystem:  "http",
		Registerer: reg,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.AuthService)
	userHandler := handler.NewUserHandler(d.UserService)
	authMiddleware := middleware.Auth(d.Tokens, d.Users)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Probes, docs, metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Readiness...)

	e.GET("/", handler.Root)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/verify", authHandler.Verify, authMiddleware)
	auth.POST("/change-password", authHandler.ChangePassword, authMiddleware)

	// --- User administration ---
	users := e.Group("/api/users", authMiddleware)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/veterinarians/list", userHandler.Veterinarians)
	users.GET("/:id", userHandler.Get)
	users.POST("", userHandler.Create, adminOnly)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.DELETE("/:id", userHandler.Deactivate, adminOnly)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
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

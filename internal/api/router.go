package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/techhive/users-api/internal/api/handler"
	"github.com/techhive/users-api/internal/api/middleware"
	"github.com/techhive/users-api/internal/core/domain"
	"github.com/techhive/users-api/internal/core/ports"
	"github.com/techhive/users-api/internal/core/service"
	"github.com/techhive/users-api/internal/infrastructure/config"
	"github.com/techhive/users-api/internal/infrastructure/http/handlers"
)

// Deps carries the lifetime-scoped collaborators the router wires together.
// Everything is injected so tests can construct isolated instances.
type Deps struct {
	Users       ports.UserRepository
	Revoker     ports.TokenRevoker
	Credentials *service.CredentialRegistry
	Redis       *redis.Client // nil when revocation is in-memory
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger, cfg.IsProduction())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.Secure())
	e.Use(echoprometheus.NewMiddleware("users_api"))
	e.Use(requestLogger(deps.Logger))

	// --- Dependencies ---
	authService := service.NewAuthService(deps.Credentials, deps.Users, deps.Revoker, cfg.JWTSecret, 24*time.Hour, deps.Logger)
	userService := service.NewUserService(deps.Users, deps.Logger)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	authn := middleware.Authenticate(middleware.AuthConfig{
		JWTSecret: cfg.JWTSecret,
		APIKey:    cfg.APIKey,
		Users:     deps.Users,
		Revoker:   deps.Revoker,
	})
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	managers := middleware.RequireRoles(domain.RoleAdmin, domain.RoleManager)
	anyRole := middleware.RequireRoles()

	loginLimiter := echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.LoginRPS),
			Burst:     cfg.LoginBurst,
			ExpiresIn: 3 * time.Minute,
		}),
	})

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login, loginLimiter)
	e.POST("/auth/logout", authHandler.Logout, authn, anyRole)

	// --- User routes ---
	users := e.Group("/users", authn)
	users.POST("", userHandler.Create, managers)
	users.GET("", userHandler.List, anyRole)
	users.GET("/stats", userHandler.Stats, managers)
	users.GET("/search", userHandler.Search, anyRole)
	users.GET("/age", userHandler.AgeRange, anyRole)
	users.GET("/role/:role", userHandler.ByRole, managers)
	users.GET("/:id", userHandler.Get, anyRole)
	users.PUT("/:id", userHandler.Update, managers)
	users.PATCH("/:id/toggle-status", userHandler.ToggleStatus, managers)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

// requestLogger emits one structured line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
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

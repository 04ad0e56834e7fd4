package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/userhub/user-management-api/docs"
	"github.com/userhub/user-management-api/internal/api/handler"
	"github.com/userhub/user-management-api/internal/api/middleware"
	"github.com/userhub/user-management-api/internal/core/ports"
	"github.com/userhub/user-management-api/internal/core/service"
	"github.com/userhub/user-management-api/internal/infrastructure/config"
	mongodb "github.com/userhub/user-management-api/internal/infrastructure/db/mongo"
	redisdb "github.com/userhub/user-management-api/internal/infrastructure/db/redis"
)

// Dependencies carries the external collaborators the router wires together.
type Dependencies struct {
	DB     *mongo.Database
	Redis  *redis.Client
	Users  ports.UserRepository
	Config *config.Config
	Logger zerolog.Logger
	Audit  ports.AuditSink
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{deps.Config.FrontendURL},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("userapi"))

	// --- Wiring ---
	userRepo := deps.Users
	if userRepo == nil {
		userRepo = mongodb.NewUserRepository(deps.DB)
	}
	tokens := service.NewTokenService(deps.Config.JWTSecret, deps.Config.TokenTTL)
	limiter := redisdb.NewLoginLimiter(deps.Redis, deps.Config.Login.MaxAttempts, deps.Config.Login.Window)

	authService := service.NewAuthService(userRepo, tokens, limiter, deps.Audit, deps.Logger)
	userService := service.NewUserService(userRepo, deps.Audit, deps.Logger)

	authHandler := handler.NewAuthHandler(authService, tokens.TTL())
	userHandler := handler.NewUserHandler(userService)
	authMW := middleware.Auth(tokens, userRepo)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/signin", authHandler.Signin)
	e.GET("/auth/signout", authHandler.Signout, authMW)

	// --- User CRUD (all protected) ---
	users := e.Group("/api/users", authMW)
	users.GET("", userHandler.List, middleware.ValidateQuery())
	users.GET("/:userId", userHandler.Get)
	users.PUT("/:userId", userHandler.Update)
	users.DELETE("/:userId", userHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

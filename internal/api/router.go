package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/orgtree/hierarchy-api/internal/api/handler"
	"github.com/orgtree/hierarchy-api/internal/api/middleware"
	"github.com/orgtree/hierarchy-api/internal/core/ports"
	"github.com/orgtree/hierarchy-api/internal/core/service"
	"github.com/orgtree/hierarchy-api/internal/infrastructure/config"
	mongodb "github.com/orgtree/hierarchy-api/internal/infrastructure/db/mongo"
	redisdb "github.com/orgtree/hierarchy-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("hierarchy"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	txRunner := mongodb.NewTxRunner(db.Client())
	refreshStore := redisdb.NewRefreshTokenStore(rdb)

	creds := service.NewCredentialService(cfg.JWTSecret, cfg.RefreshJWTSecret, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)
	engine := service.NewHierarchyEngine(userRepo, txRunner, log)
	policy := service.NewAuthorizationPolicy(userRepo, engine)
	userService := service.NewUserService(userRepo, txRunner, engine, policy, creds, refreshStore, audit, log)

	userHandler := handler.NewUserHandler(userService)
	authRequired := middleware.Auth(creds)

	// --- User routes ---
	e.POST("/users", userHandler.Register)
	e.POST("/users/authenticate", userHandler.Authenticate)
	e.POST("/users/refresh", userHandler.Refresh)
	e.GET("/users", userHandler.List, authRequired)
	e.PATCH("/users/:userId", userHandler.ChangeBoss, authRequired)

	// Hierarchy visualization, a testing aid like the health probes.
	e.GET("/visualize", userHandler.Visualize)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clickerrealm/community-api/internal/api/handler"
	"github.com/clickerrealm/community-api/internal/api/middleware"
	"github.com/clickerrealm/community-api/internal/core/domain"
	"github.com/clickerrealm/community-api/internal/core/ports"
)

// Deps carries everything the router needs. Services are constructed in
// main so the seed tool can reuse them without an HTTP layer.
type Deps struct {
	AuthService      ports.AuthService
	KeyService       ports.KeyService
	PostService      ports.PostService
	GeneratorService ports.GeneratorService
	AuditRepo        ports.AuditRepository

	Mongo *mongo.Database
	Redis *redis.Client
	Log   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("community"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	postHandler := handler.NewPostHandler(deps.PostService)
	adminHandler := handler.NewAdminHandler(deps.AuthService, deps.KeyService, deps.AuditRepo)
	generateHandler := handler.NewGenerateHandler(deps.GeneratorService)

	authenticated := middleware.Auth(deps.AuthService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authenticated)

	// --- Board routes ---
	posts := e.Group("/v1/posts")
	posts.GET("", postHandler.List)
	posts.POST("", postHandler.Create, authenticated)
	posts.DELETE("/:id", postHandler.Delete, authenticated, adminOnly)

	// --- Content generation ---
	generate := e.Group("/v1/generate", authenticated)
	generate.GET("/idea", generateHandler.Idea)
	generate.POST("/draft", generateHandler.Draft)

	// --- Admin panel ---
	admin := e.Group("/v1/admin", authenticated, adminOnly)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users/:id/roles", adminHandler.GrantRole)
	admin.DELETE("/users/:id/roles/:role", adminHandler.RevokeRole)
	admin.PUT("/users/:id/status", adminHandler.SetStatus)
	admin.GET("/keys", adminHandler.ListKeys)
	admin.POST("/keys", adminHandler.IssueKey)
	admin.DELETE("/keys/:id", adminHandler.DeleteKey)
	admin.GET("/audit", adminHandler.ListAudit)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

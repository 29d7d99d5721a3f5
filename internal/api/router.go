package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/farmarket/farmarket-api/docs"
	"github.com/farmarket/farmarket-api/internal/api/handler"
	"github.com/farmarket/farmarket-api/internal/api/middleware"
	"github.com/farmarket/farmarket-api/internal/core/domain"
	"github.com/farmarket/farmarket-api/internal/core/ports"
	"github.com/farmarket/farmarket-api/internal/core/service"
	mongodb "github.com/farmarket/farmarket-api/internal/infrastructure/db/mongo"
	redisdb "github.com/farmarket/farmarket-api/internal/infrastructure/db/redis"
)

// RouterConfig carries the collaborators the router needs. Storage may be
// nil; media endpoints then fail with a storage error instead of panicking.
type RouterConfig struct {
	DB        *mongo.Database
	Redis     *redis.Client
	Storage   ports.MediaStorage
	JWTSecret string
	TokenTTL  time.Duration
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("farmarket"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(cfg.DB)
	categoryRepo := mongodb.NewCategoryRepository(cfg.DB)
	productRepo := mongodb.NewProductRepository(cfg.DB)
	slugGuard := redisdb.NewSlugGuard(cfg.Redis)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, cfg.Storage, cfg.Logger)
	categoryService := service.NewCategoryService(categoryRepo, productRepo, slugGuard, cfg.Logger)
	productService := service.NewProductService(productRepo, categoryRepo, cfg.Storage, slugGuard, cfg.Logger)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)

	auth := middleware.Auth(cfg.JWTSecret, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	v1.POST("/auth/signup", authHandler.Signup)
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/auth/me", authHandler.Me, auth)

	// --- User routes ---
	users := v1.Group("/users", auth)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/me", userHandler.Me)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)
	users.PATCH("/:id/role", userHandler.SetRole, adminOnly)
	users.PATCH("/me/profile/image", userHandler.UpdateProfileImage)

	// --- Category routes (reads public, mutations admin-only) ---
	v1.GET("/categories", categoryHandler.List)
	v1.GET("/categories/:id", categoryHandler.Get)
	v1.GET("/categories/slug/:slug", categoryHandler.GetBySlug)
	v1.GET("/categories/:id/products", categoryHandler.Products)
	v1.POST("/categories", categoryHandler.Create, auth, adminOnly)
	v1.PUT("/categories/:id", categoryHandler.Update, auth, adminOnly)
	v1.DELETE("/categories/:id", categoryHandler.Delete, auth, adminOnly)

	// --- Product routes (reads public, mutations behind auth + policy) ---
	v1.GET("/products", productHandler.List)
	v1.GET("/products/:id", productHandler.Get)
	v1.GET("/products/slug/:slug", productHandler.GetBySlug)
	v1.POST("/products", productHandler.Create, auth)
	v1.PUT("/products/:id", productHandler.Update, auth)
	v1.DELETE("/products/:id", productHandler.Delete, auth)

	// --- Ops surface ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.DB, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

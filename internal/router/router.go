package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/config"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/handler"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/middleware"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/repository"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/security"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/service"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/token"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	sweetRepo := repository.NewSweetRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	hasher := security.NewHasher()
	tokens := token.NewService(cfg.JWTSecret, time.Duration(cfg.JWTExpirationMinutes)*time.Minute)
	authSvc := service.NewAuthService(userRepo, hasher, tokens, cfg)
	sweetSvc := service.NewSweetService(sweetRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	sweetsH := handler.NewSweetsHandler(sweetSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		// Self-closing: open only while zero admins exist
		auth.POST("/create-admin", authH.BootstrapAdmin)
		// Break-glass path, gated by the setup secret in the body
		auth.POST("/reset-admin-password", authH.ResetAdminPassword)
	}

	// Catalog reads and purchase are public, point-of-sale style
	r.GET("/sweets", sweetsH.List)
	r.GET("/sweets/search", sweetsH.Search)
	r.GET("/sweets/:id", sweetsH.GetByID)
	r.POST("/sweets/:id/purchase", sweetsH.Purchase)

	// Mutations require an authenticated admin
	authMW := middleware.Auth(tokens, userRepo)
	admin := r.Group("/sweets", authMW, middleware.RequireAdmin())
	{
		admin.POST("", sweetsH.Create)
		admin.PUT("/:id", sweetsH.Update)
		admin.DELETE("/:id", sweetsH.Delete)
		admin.POST("/:id/restock", sweetsH.Restock)
	}

	// Swagger UI, only outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

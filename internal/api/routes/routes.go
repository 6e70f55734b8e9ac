// Package routes handles the setup and configuration of API routes
package routes

import (
	"database/sql"

	_ "authledger/docs" // Import swagger docs
	"authledger/internal/api/handlers"
	"authledger/internal/api/middleware"
	"authledger/internal/auth"
	"authledger/internal/config"
	"authledger/internal/ledger"
	"authledger/internal/logger"
	"authledger/internal/repository/postgres"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies are the services shared between the router and background jobs
type Dependencies struct {
	Config      *config.Config
	DB          *sql.DB
	Log         *zap.Logger
	Ledger      *ledger.Ledger
	AuthService *auth.Service
	RateLimiter *middleware.RateLimiter
}

// NewDependencies builds the repositories and services over db
func NewDependencies(cfg *config.Config, db *sql.DB, log *zap.Logger) *Dependencies {
	attempts := postgres.NewLoginAttemptRepository(db, cfg.Database.QueryTimeout)
	return &Dependencies{
		Config: cfg,
		DB:     db,
		Log:    log,
		Ledger: ledger.New(attempts, auth.NewFingerprinter(cfg.Auth.FingerprintSecret), log),
		AuthService: auth.NewService(auth.Config{
			Secret:    cfg.Auth.JWTSecret,
			ExpiresIn: cfg.Auth.JWTExpiresIn,
		}),
		RateLimiter: middleware.NewRateLimiter(cfg),
	}
}

// SetupRoutes configures all API routes and their handlers
func SetupRoutes(deps *Dependencies) (*gin.Engine, error) {
	cfg := deps.Config

	r := gin.New()
	r.Use(gin.Recovery(), logger.GinLogger(deps.Log))

	if len(cfg.API.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.API.TrustedProxies); err != nil {
			return nil, err
		}
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(deps.DB, cfg.Database.QueryTimeout)
	roleRepo := postgres.NewRoleRepository(deps.DB, cfg.Database.QueryTimeout)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(deps.AuthService, userRepo, deps.Log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Log)
	authHandler := handlers.NewAuthHandler(
		userRepo,
		roleRepo,
		deps.AuthService,
		deps.Ledger,
		ledger.NewHeaderGeo(),
		cfg.Auth.CookieSecure,
		deps.Log,
	)
	attemptHandler := handlers.NewLoginAttemptHandler(deps.Ledger, deps.Log)
	userHandler := handlers.NewUserHandler(userRepo, deps.Log)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Health check (no authentication required)
		v1.GET("/health", healthHandler.Health)

		// Auth routes. Login is not throttled so that every attempt reaches
		// the ledger; the rest are rate limited per client IP.
		authRoutes := v1.Group("/auth")
		authRoutes.POST("/login", authHandler.Login)
		limited := authRoutes.Group("", deps.RateLimiter.Middleware())
		{
			limited.POST("/register", authHandler.Register)
			limited.GET("/me", authMiddleware.AuthRequired(), authHandler.Me)
			limited.POST("/logout", authMiddleware.AuthRequired(), authHandler.Logout)
		}

		// Ledger routes (admin only)
		attempts := v1.Group("/login-attempts")
		attempts.Use(authMiddleware.AuthRequired(), authMiddleware.AdminRequired())
		{
			attempts.GET("/all", attemptHandler.All)
			attempts.GET("/by-email/:email", attemptHandler.ByEmail)
			attempts.GET("/failed", attemptHandler.Failed)
			attempts.GET("/stats", attemptHandler.Stats)
		}

		// User administration (admin only)
		users := v1.Group("/users")
		users.Use(authMiddleware.AuthRequired(), authMiddleware.AdminRequired())
		{
			users.PUT("/:id/status", userHandler.UpdateStatus)
		}
	}

	return r, nil
}

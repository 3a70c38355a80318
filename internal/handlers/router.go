package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
	"github.com/JonnyWalker81/vibecheck/backend/internal/middleware"
)

// RouterConfig wires the handlers and middleware into a router
type RouterConfig struct {
	Logger         logger.Logger
	Verifier       middleware.TokenVerifier
	AllowedOrigins []string
	Production     bool

	// Limiters are optional; nil disables the limit
	APILimiter  *middleware.RateLimiter
	AuthLimiter *middleware.RateLimiter

	Auth      *AuthHandler
	MoodEntry *MoodEntryHandler
	Dashboard *DashboardHandler
	Demo      *DemoHandler
	Health    *HealthHandler
}

// NewRouter builds the gin engine with every API route registered
func NewRouter(cfg RouterConfig) *gin.Engine {
	RegisterValidation()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Logger))
	router.Use(middleware.SecurityHeaders(cfg.Production))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/health", cfg.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	if cfg.APILimiter != nil {
		v1.Use(cfg.APILimiter.Middleware())
	}
	{
		// Auth routes
		authRoutes := v1.Group("/auth")
		if cfg.AuthLimiter != nil {
			authRoutes.Use(cfg.AuthLimiter.Middleware())
		}
		{
			authRoutes.POST("/register", cfg.Auth.Register)
			authRoutes.POST("/login", cfg.Auth.Login)
			authRoutes.POST("/logout", cfg.Auth.Logout)
			authRoutes.GET("/me", middleware.Auth(cfg.Verifier), cfg.Auth.Me)
		}

		v1.POST("/demo", cfg.Demo.CreateDemo)

		// Protected routes
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.Verifier))
		{
			protected.POST("/mood-entries", cfg.MoodEntry.CreateMoodEntry)
			protected.GET("/mood-entries", cfg.MoodEntry.GetMoodEntries)
			protected.GET("/dashboard", cfg.Dashboard.GetDashboard)
		}
	}

	return router
}

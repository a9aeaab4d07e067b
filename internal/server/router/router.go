package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aminedz/microimport/internal/config"
	"github.com/aminedz/microimport/internal/server/handlers"
	"github.com/aminedz/microimport/internal/server/middleware"
)

// Handlers groups the HTTP adapters the router wires up.
type Handlers struct {
	Auth           *handlers.AuthHandler
	Voyages        *handlers.VoyageHandler
	Configurations *handlers.ConfigurationHandler
	Calculations   *handlers.CalculationHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(cfg config.CORSConfig, h Handlers, authGuard *middleware.Auth, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
	}

	api := r.Group("/api", authGuard.Handler())
	{
		api.GET("/auth/me", h.Auth.Me)
		api.PUT("/auth/profile", h.Auth.UpdateProfile)
		api.PUT("/auth/change-password", h.Auth.ChangePassword)

		api.GET("/voyages", h.Voyages.List)
		api.POST("/voyages", h.Voyages.Create)
		api.GET("/voyages/stats", h.Voyages.Statistics)
		api.GET("/voyages/:id", h.Voyages.Get)
		api.PUT("/voyages/:id", h.Voyages.Update)
		api.DELETE("/voyages/:id", h.Voyages.Delete)
		api.GET("/voyages/:id/report", h.Voyages.Report)
		api.POST("/voyages/:id/export", h.Voyages.Export)

		api.GET("/configurations", h.Configurations.List)
		api.POST("/configurations", h.Configurations.Save)
		api.PUT("/configurations/:id", h.Configurations.Update)
		api.DELETE("/configurations/:id", h.Configurations.Delete)

		api.POST("/calculations/preview", h.Calculations.Preview)
		api.POST("/calculations/suggest-price", h.Calculations.SuggestPrice)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

package server

import (
	"time"

	httpHandler "linkedin-autoposter/interfaces/http"
	"linkedin-autoposter/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	SecretKey      string
	AllowedOrigins []string
}

// Handlers groups the route handlers; ShareStream may be nil.
type Handlers struct {
	Health      httpHandler.IHealthHandler
	OAuth       httpHandler.ILinkedInOAuthHandler
	Share       httpHandler.IShareHandler
	Settings    httpHandler.ISettingsHandler
	ShareStream gin.HandlerFunc
}

func InitiateRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.POST("/healthz", h.Health.Healthz)

	// OAuth authentication routes
	router.GET("/auth/linkedin", h.OAuth.GetAuthURL)
	router.GET("/auth/linkedin/callback", h.OAuth.Callback)

	api := router.Group("api")
	api.Use(middleware.Auth(cfg.SecretKey))

	linkedin := api.Group("/linkedin")
	{
		linkedin.GET("/status", h.OAuth.Status)
		linkedin.POST("/disconnect", h.OAuth.Disconnect)
		linkedin.POST("/test-post", h.Share.TestPost)
	}

	api.GET("/settings", h.Settings.Get)
	api.PUT("/settings", h.Settings.Update)

	content := api.Group("/content")
	{
		content.POST("/events", h.Share.ContentEvent)
		content.GET("/:itemId/share-status", h.Share.GetShareStatus)
		content.PUT("/:itemId/disable", h.Share.SetDisabled)
	}

	if h.ShareStream != nil {
		api.GET("/share/stream", h.ShareStream)
	}
	return router
}

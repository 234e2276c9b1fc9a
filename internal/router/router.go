package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reclaim/backend/internal/handler"
	"reclaim/backend/internal/middleware"
	"reclaim/backend/internal/service"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
	Usage   *handler.UsageHandler
	Focus   *handler.FocusHandler
	Insight *handler.InsightHandler
}

func New(authService *service.AuthService, h Handlers, corsOrigins []string) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(authService))

	protected.GET("/profile", h.Profile.Get)
	protected.PUT("/profile", h.Profile.UpdatePreferences)

	protected.POST("/usage", h.Usage.Submit)
	protected.GET("/dashboard", h.Usage.Dashboard)
	protected.GET("/report", h.Usage.Report)

	focus := protected.Group("/focus")
	focus.POST("/start", h.Focus.Start)
	focus.POST("/end", h.Focus.End)
	focus.GET("/today", h.Focus.Today)

	insights := protected.Group("/insights")
	insights.POST("/generate", h.Insight.Generate)
	insights.GET("", h.Insight.Latest)

	return engine
}

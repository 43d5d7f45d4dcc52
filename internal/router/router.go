package router

import (
	"net/http"

	"project-manager/internal/config"
	"project-manager/internal/handler"
	"project-manager/internal/middleware"
	"project-manager/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures the Gin engine, API routes and the static
// frontend.
func SetupRouter(cfg *config.Config, users *service.UserService, projects *service.ProjectService) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestLogger())

	// static frontend
	r.Static("/public", "./public")
	r.StaticFile("/", "./public/index.html")

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ====== API ======
	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(users, cfg.Session.CookieName, cfg.Session.CookieTTLHours)
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	// logout tolerates dead sessions, so it stays public
	api.POST("/auth/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(users, cfg.Session.CookieName))

	protected.GET("/me", authHandler.Me)

	projectHandler := handler.NewProjectHandler(projects)
	protected.GET("/projects", projectHandler.List)
	protected.POST("/projects", projectHandler.Create)
	protected.PATCH("/projects/:id", projectHandler.UpdateStatus)
	protected.DELETE("/projects/:id", projectHandler.Delete)

	profileHandler := handler.NewProfileHandler(users)
	protected.PUT("/profile/preferences", profileHandler.UpdatePreferences)
	protected.POST("/profile/password", profileHandler.ChangePassword)

	exportHandler := handler.NewExportHandler(projects)
	protected.GET("/projects/export", exportHandler.ExportXLSX)

	return r
}

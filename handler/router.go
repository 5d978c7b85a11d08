package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/pdf-ask/middleware"
	"github.com/tieubaoca/pdf-ask/service"
	"github.com/tieubaoca/pdf-ask/web"
)

type RouterConfig struct {
	InfoService    *service.InfoService
	FileService    *service.FileService
	MaxUploadBytes int64
	UploadsToken   string
	ExposeErrors   bool
	Provider       string
	Model          string
}

// NewRouter wires every route of the service onto a fresh gin engine.
func NewRouter(cfg RouterConfig) *gin.Engine {
	corsHandler := NewCorsHandler()
	healthHandler := NewHealthHandler(cfg.Provider, cfg.Model)
	infoHandler := NewInfoHandler(cfg.InfoService, cfg.ExposeErrors)
	documentHandler := NewDocumentHandler(cfg.FileService)

	router := gin.New()
	router.SetHTMLTemplate(web.Templates())

	// Apply global middleware
	router.Use(middleware.RequestLogger())
	router.Use(infoHandler.errors.recovery())
	router.Use(corsHandler.CorsMiddleware())
	router.NoRoute(notFound)

	router.GET("/", healthHandler.HandleIndex)
	router.POST("/info", middleware.BodyLimit(cfg.MaxUploadBytes), infoHandler.HandleInfo)
	router.GET("/uploads/:filename", middleware.BearerAuth(cfg.UploadsToken), documentHandler.ServeDocument)

	return router
}

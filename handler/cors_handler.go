package handler

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type CorsHandler struct {
	config cors.Config
}

func NewCorsHandler() *CorsHandler {
	return &CorsHandler{
		config: cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:   []string{"Content-Length", "X-Request-ID"},
			MaxAge:          12 * time.Hour,
		},
	}
}

func (h *CorsHandler) CorsMiddleware() gin.HandlerFunc {
	return cors.New(h.config)
}

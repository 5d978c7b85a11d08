package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/pdf-ask/types"
)

type HealthHandler struct {
	status types.HealthStatus
}

func NewHealthHandler(provider, model string) *HealthHandler {
	return &HealthHandler{
		status: types.HealthStatus{
			Status:   "ok",
			Provider: provider,
			Model:    model,
		},
	}
}

func (h *HealthHandler) HandleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "health.html", h.status)
}

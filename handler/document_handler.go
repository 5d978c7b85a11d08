package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/pdf-ask/service"
	"github.com/tieubaoca/pdf-ask/types"
)

type DocumentHandler struct {
	fileService *service.FileService
}

func NewDocumentHandler(fileService *service.FileService) *DocumentHandler {
	return &DocumentHandler{
		fileService: fileService,
	}
}

// ServeDocument streams a previously uploaded file by its sanitized name.
func (h *DocumentHandler) ServeDocument(c *gin.Context) {
	file, err := h.fileService.Open(c.Param("filename"))
	if err != nil {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", file.Name))
	c.File(file.Path)
}

package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/pdf-ask/service"
	"github.com/tieubaoca/pdf-ask/types"
)

// multipart parts beyond this are spooled to temp files by net/http
const multipartMemory = 8 << 20

type InfoHandler struct {
	infoService *service.InfoService
	errors      errorResponder
}

func NewInfoHandler(infoService *service.InfoService, exposeErrors bool) *InfoHandler {
	return &InfoHandler{
		infoService: infoService,
		errors:      errorResponder{exposeErrors: exposeErrors},
	}
}

// HandleInfo answers POST /info. On success the body is the generated text
// as-is. Processing failures are reported as {"error": "..."} with status 500;
// unreadable or oversized forms are rejected before anything is saved.
func (h *InfoHandler) HandleInfo(c *gin.Context) {
	err := c.Request.ParseMultipartForm(multipartMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, types.ErrorResponse{
				Error: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
			})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid form data"})
		return
	}

	req := types.InfoRequest{
		Message: c.PostForm("msg"),
	}
	if form := c.Request.MultipartForm; form != nil {
		if files := form.File["pdf"]; len(files) > 0 {
			req.File = files[0]
		}
	}

	text, err := h.infoService.Answer(c.Request.Context(), req)
	if err != nil {
		h.errors.internal(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

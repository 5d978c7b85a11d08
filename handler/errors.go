package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/pdf-ask/logger"
	"github.com/tieubaoca/pdf-ask/types"
)

const genericErrorMessage = "internal server error"

// errorResponder turns failures into the JSON error body used by every route.
type errorResponder struct {
	exposeErrors bool
}

func (e errorResponder) internal(c *gin.Context, err error) {
	c.Error(err)
	logger.WithError(err).Error("Error handling request")
	message := genericErrorMessage
	if e.exposeErrors {
		message = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: message})
}

// recovery converts panics into the same 500 body as returned errors.
func (e errorResponder) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		e.internal(c, fmt.Errorf("%v", recovered))
	})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "not found"})
}

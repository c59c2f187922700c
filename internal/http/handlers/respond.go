package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ameen0saad/TO-DO-List/domain"
)

// respondData writes the success envelope.
func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"status": "success", "data": data})
}

// respondErr writes the error envelope. Operational errors surface their own
// message and status; anything else is logged and masked as a generic 500.
func respondErr(c *gin.Context, logger *zap.Logger, err error) {
	if opErr, ok := domain.AsError(err); ok {
		c.JSON(opErr.Code, gin.H{"status": opErr.Status(), "message": opErr.Message})
		return
	}
	logger.Error("unexpected error",
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "something went very wrong"})
}

package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asset-manager-api/pkg/apperr"
)

// respondError maps a service error to its HTTP status. Internal
// errors are logged and masked; everything else carries its message to
// the caller.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error(op+" error", zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

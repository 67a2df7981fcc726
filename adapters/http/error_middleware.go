package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"devconnect/pkg/apperror"
	"devconnect/pkg/logger"
)

// ErrorMiddleware turns errors pushed via c.Error into JSON responses.
// Taxonomy errors map to their status code; anything else is logged
// with its cause and reported as a generic 500 so internals never leak.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			status := apperror.ToHTTPStatus(appErr)
			if status == http.StatusInternalServerError {
				log.Error("request failed", appErr.Err,
					zap.String("path", c.Request.URL.Path),
					zap.String("message", appErr.Message))
				c.JSON(status, gin.H{"error": "internal server error"})
				return
			}
			c.JSON(status, gin.H{"error": appErr.Message})
			return
		}

		log.Error("unhandled error", err, zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

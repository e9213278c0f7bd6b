package middleware

import (
	"github.com/gin-gonic/gin"

	"courier-chat/pkg/logger"
)

// ErrorHandler logs any error a handler attached to the gin context. Handlers
// only attach unexpected errors; domain errors are reported to the caller and
// not logged here.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		if l != nil {
			l.ErrorfCtx(c.Request.Context(), "request error: %s", c.Errors.Last().Err.Error())
		}
	}
}

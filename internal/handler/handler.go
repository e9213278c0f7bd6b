// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courier-chat/internal/services"
	"courier-chat/internal/transport/httpdto"
)

// writeError reports a domain error in the JSON error envelope. Unexpected
// errors are attached to the gin context for logging and reported as a plain
// 500 without leaking internals.
func writeError(c *gin.Context, err error) {
	status := services.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "internal server error"
	}
	c.JSON(status, httpdto.NewErrorResponse(message, status))
}

func writeUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized,
		httpdto.NewErrorResponse("access is unauthorized", http.StatusUnauthorized))
}

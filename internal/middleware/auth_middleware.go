package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"courier-chat/internal/services"
	"courier-chat/internal/transport/httpdto"
	"courier-chat/pkg/logger"
)

// RequireLogin verifies the request token and attaches the username to the
// request context. Missing or invalid tokens fail with 401.
func RequireLogin(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := service.VerifyToken(extractToken(c))
		if err != nil {
			abortUnauthorized(c)
			return
		}

		ctx := services.WithUsernameContext(c.Request.Context(), username)
		ctx = context.WithValue(ctx, logger.UsernameKey, username)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireSameUser verifies the token and additionally requires its username to
// match the :username path parameter. Any mismatch fails with 401, not 403:
// the API reports every authorization failure identically.
func RequireSameUser(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := service.VerifyToken(extractToken(c))
		if err != nil {
			abortUnauthorized(c)
			return
		}

		if username != c.Param("username") {
			abortUnauthorized(c)
			return
		}

		ctx := services.WithUsernameContext(c.Request.Context(), username)
		ctx = context.WithValue(ctx, logger.UsernameKey, username)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// extractToken reads the token from the Authorization bearer header, falling
// back to the token query parameter.
func extractToken(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return c.Query("token")
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		httpdto.NewErrorResponse("access is unauthorized", http.StatusUnauthorized))
}

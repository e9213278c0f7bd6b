package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courier-chat/internal/services"
	"courier-chat/internal/transport/httpdto"
)

// UserHandler serves the user directory endpoints.
type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List returns every user's public profile.
func (h *UserHandler) List(c *gin.Context) {
	profiles, err := h.service.All(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.UsersResponse{Users: httpdto.FromProfileSlice(profiles)})
}

// Get returns the full profile for the :username path parameter.
func (h *UserHandler) Get(c *gin.Context) {
	detail, err := h.service.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.UserResponse{User: httpdto.FromProfileDetail(detail)})
}

// MessagesTo returns messages sent to the user, each with the sender profile.
func (h *UserHandler) MessagesTo(c *gin.Context) {
	messages, err := h.service.MessagesTo(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.MessagesResponse[httpdto.InboundMessageDTO]{
		Messages: httpdto.FromInboundSlice(messages),
	})
}

// MessagesFrom returns messages sent by the user, each with the recipient profile.
func (h *UserHandler) MessagesFrom(c *gin.Context) {
	messages, err := h.service.MessagesFrom(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.MessagesResponse[httpdto.OutboundMessageDTO]{
		Messages: httpdto.FromOutboundSlice(messages),
	})
}

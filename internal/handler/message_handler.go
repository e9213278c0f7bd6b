package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"courier-chat/internal/services"
	"courier-chat/internal/transport/httpdto"
	courier_errors "courier-chat/pkg/errors"
)

// MessageHandler serves the messages resource. Identity checks live here:
// the service layer stores and fetches, the handlers decide who may.
type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Get returns a message with both profiles joined. Only the sender or the
// recipient may fetch it.
func (h *MessageHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, courier_errors.ErrNotFound)
		return
	}

	username, ok := services.UsernameFromContext(c.Request.Context())
	if !ok {
		writeUnauthorized(c)
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	if detail.FromUser.Username != username && detail.ToUser.Username != username {
		writeUnauthorized(c)
		return
	}

	c.JSON(http.StatusOK, httpdto.MessageResponse[httpdto.MessageDetailDTO]{
		Message: httpdto.FromMessageDetail(detail),
	})
}

// Send creates a message from the authenticated user.
func (h *MessageHandler) Send(c *gin.Context) {
	var req httpdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			httpdto.NewErrorResponse("invalid request body", http.StatusBadRequest))
		return
	}

	username, ok := services.UsernameFromContext(c.Request.Context())
	if !ok {
		writeUnauthorized(c)
		return
	}

	m, err := h.service.Create(c.Request.Context(), services.CreateMessageInput{
		FromUsername: username,
		ToUsername:   req.ToUsername,
		Body:         req.Body,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.MessageResponse[httpdto.MessageDTO]{
		Message: httpdto.FromMessage(m),
	})
}

// MarkRead stamps read_at on a message. Only the recipient may mark it read.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, courier_errors.ErrNotFound)
		return
	}

	username, ok := services.UsernameFromContext(c.Request.Context())
	if !ok {
		writeUnauthorized(c)
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	if detail.ToUser.Username != username {
		writeUnauthorized(c)
		return
	}

	readAt, err := h.service.MarkRead(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.MessageResponse[httpdto.ReadReceiptDTO]{
		Message: httpdto.ReadReceiptDTO{ID: id.String(), ReadAt: readAt},
	})
}

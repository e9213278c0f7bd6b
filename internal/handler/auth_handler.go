package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courier-chat/internal/services"
	"courier-chat/internal/transport/httpdto"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	service *services.AuthService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register creates an account and returns a token for it.
func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			httpdto.NewErrorResponse("invalid request body", http.StatusBadRequest))
		return
	}

	token, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.TokenResponse{Token: token})
}

// Login authenticates credentials and returns a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			httpdto.NewErrorResponse("invalid request body", http.StatusBadRequest))
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.TokenResponse{Token: token})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finbot/internal/errors"
	"finbot/internal/services"
)

// AdminHandler exposes the out-of-band user registration surface. The bot
// itself never creates users.
type AdminHandler struct {
	userService services.UserServicer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userService services.UserServicer) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// RegisterUserRequest is the payload for creating a user.
type RegisterUserRequest struct {
	Name           string `json:"name" binding:"required,notblank"`
	TelegramChatID int64  `json:"telegram_chat_id" binding:"required,gt=0"`
}

// RegisterUser creates a user bound to a Telegram chat ID.
func (h *AdminHandler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.RegisterUser(req.Name, req.TelegramChatID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

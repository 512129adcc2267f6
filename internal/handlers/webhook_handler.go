package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"finbot/internal/logger"
	"finbot/internal/telegram"
)

// MessageHandler processes one inbound utterance and returns the reply.
type MessageHandler interface {
	Handle(ctx context.Context, chatID int64, text string) string
}

// WebhookHandler receives Telegram update envelopes on the secret-bearing
// webhook path.
type WebhookHandler struct {
	secret   string
	messages MessageHandler
	replier  telegram.Replier
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(secret string, messages MessageHandler, replier telegram.Replier) *WebhookHandler {
	return &WebhookHandler{secret: secret, messages: messages, replier: replier}
}

// Health responds to the liveness probe on the root path.
func (h *WebhookHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "finbot is running")
}

// Receive handles one webhook delivery. Updates without a text message
// are acknowledged and skipped. The response is always 200 once the path
// and content type check out, so Telegram does not redeliver updates
// whose processing failed internally.
func (h *WebhookHandler) Receive(c *gin.Context) {
	if subtle.ConstantTimeCompare([]byte(c.Param("secret")), []byte(h.secret)) != 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
		return
	}

	if !strings.HasPrefix(c.ContentType(), "application/json") {
		c.JSON(http.StatusForbidden, gin.H{"error": gin.H{"code": "FORBIDDEN", "message": "Content type must be application/json"}})
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_INPUT", "message": "Malformed update envelope"}})
		return
	}

	if update.Message == nil || strings.TrimSpace(update.Message.Text) == "" {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	chatID := update.Message.Chat.ID
	reply := h.messages.Handle(c.Request.Context(), chatID, update.Message.Text)

	if err := h.replier.Reply(chatID, reply); err != nil {
		logger.Get().Errorw("reply delivery failed",
			"chat_id", chatID,
			"error", err.Error(),
		)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

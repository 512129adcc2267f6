// Package telegram wraps the Bot API client used to deliver replies.
package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Replier delivers a reply to a chat. The dispatcher and webhook handler
// depend on this instead of the concrete Bot API client.
type Replier interface {
	Reply(chatID int64, text string) error
}

// Sender sends messages through the Telegram Bot API.
type Sender struct {
	bot *tgbotapi.BotAPI
}

// NewSender authenticates against the Bot API with the given token.
func NewSender(token string) (*Sender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating bot client: %w", err)
	}
	return &Sender{bot: bot}, nil
}

// NewSenderWithEndpoint authenticates against a custom API endpoint.
// Used by tests pointing at a local server.
func NewSenderWithEndpoint(token, endpoint string) (*Sender, error) {
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating bot client: %w", err)
	}
	return &Sender{bot: bot}, nil
}

// Reply sends text to the chat.
func (s *Sender) Reply(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}

// RegisterWebhook points Telegram at this deployment's webhook URL.
// Called on boot when an external base URL is configured.
func (s *Sender) RegisterWebhook(baseURL, secret string) error {
	wh, err := tgbotapi.NewWebhook(fmt.Sprintf("%s/webhook/%s", baseURL, secret))
	if err != nil {
		return fmt.Errorf("building webhook config: %w", err)
	}
	if _, err := s.bot.Request(wh); err != nil {
		return fmt.Errorf("registering webhook: %w", err)
	}
	return nil
}

// Username returns the authenticated bot's username.
func (s *Sender) Username() string {
	return s.bot.Self.UserName
}

package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "finbot/internal/errors"
	"finbot/internal/models"
)

// userService handles identity lookups and registration.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// GetUserByChatID resolves a Telegram chat ID to a registered user.
func (s *userService) GetUserByChatID(chatID int64) (*models.User, error) {
	var user models.User
	if err := s.db.Where("telegram_chat_id = ?", chatID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotRegistered
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// RegisterUser creates a user bound to a chat ID. Registration happens
// through the admin API, never through the bot conversation itself.
func (s *userService) RegisterUser(name string, chatID int64) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if chatID <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "telegram chat ID must be positive")
	}

	var existing models.User
	err := s.db.Where("telegram_chat_id = ?", chatID).First(&existing).Error
	if err == nil {
		return nil, apperrors.ErrDuplicateChatID
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{Name: name, TelegramChatID: chatID}
	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

package services

import (
	"errors"
	"testing"

	apperrors "finbot/internal/errors"
	"finbot/internal/testutil"
)

func TestUserService_RegisterUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewUserService(db)

	t.Run("successful_registration", func(t *testing.T) {
		user, err := service.RegisterUser("Ana", 555123)
		testutil.AssertNoError(t, err)
		if user.ID == 0 {
			t.Error("expected persisted user to have an ID")
		}
		if user.Name != "Ana" || user.TelegramChatID != 555123 {
			t.Errorf("unexpected user: %+v", user)
		}
	})

	t.Run("duplicate_chat_id", func(t *testing.T) {
		_, err := service.RegisterUser("Outra Ana", 555123)
		testutil.AssertAppError(t, err, "DUPLICATE_CHAT_ID")
	})

	t.Run("blank_name", func(t *testing.T) {
		_, err := service.RegisterUser("   ", 555124)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("non_positive_chat_id", func(t *testing.T) {
		_, err := service.RegisterUser("Bruno", 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUserService_GetUserByChatID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewUserService(db)

	created := testutil.CreateTestUserWithChatID(t, db, 777001)

	t.Run("found", func(t *testing.T) {
		user, err := service.GetUserByChatID(777001)
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %d, got %d", created.ID, user.ID)
		}
	})

	t.Run("unknown_chat_id", func(t *testing.T) {
		_, err := service.GetUserByChatID(999999)
		if !errors.Is(err, apperrors.ErrUserNotRegistered) {
			t.Errorf("expected ErrUserNotRegistered, got %v", err)
		}
	})
}

package services

import (
	"errors"
	"testing"
	"time"

	apperrors "finbot/internal/errors"
	"finbot/internal/testutil"
)

func TestGoalService_SetGoal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewGoalService(db, time.UTC)
	user := testutil.CreateTestUser(t, db)

	t.Run("creates_goal_lowercased", func(t *testing.T) {
		goal, err := service.SetGoal(user.ID, "Mercado", testutil.Amount(t, "600"))
		testutil.AssertNoError(t, err)
		if goal.Category != "mercado" {
			t.Errorf("expected lower-cased category, got %q", goal.Category)
		}
		testutil.AssertAmount(t, goal.GoalAmount, "600")
	})

	t.Run("last_write_wins", func(t *testing.T) {
		goal, err := service.SetGoal(user.ID, "MERCADO", testutil.Amount(t, "450"))
		testutil.AssertNoError(t, err)
		testutil.AssertAmount(t, goal.GoalAmount, "450")
	})

	t.Run("blank_category_rejected", func(t *testing.T) {
		_, err := service.SetGoal(user.ID, "  ", testutil.Amount(t, "100"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("non_positive_amount_rejected", func(t *testing.T) {
		_, err := service.SetGoal(user.ID, "Lazer", testutil.Amount(t, "0"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGoalService_Progress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewGoalService(db, time.UTC)
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestGoal(t, db, user.ID, "mercado", "600")
	now := time.Now().UTC()
	testutil.CreateTestExpenseAt(t, db, user.ID, "120", "Mercado", now)
	testutil.CreateTestExpenseAt(t, db, user.ID, "80.50", "mercado", now)
	testutil.CreateTestExpenseAt(t, db, user.ID, "999", "mercado", now.AddDate(0, -2, 0))

	t.Run("month_to_date_spend", func(t *testing.T) {
		progress, err := service.Progress(user.ID, "Mercado")
		testutil.AssertNoError(t, err)
		testutil.AssertAmount(t, progress.Goal, "600")
		testutil.AssertAmount(t, progress.Spent, "200.50")
		testutil.AssertAmount(t, progress.Remaining, "399.50")
	})

	t.Run("overspend_goes_negative", func(t *testing.T) {
		testutil.CreateTestExpenseAt(t, db, user.ID, "500", "mercado", now)
		progress, err := service.Progress(user.ID, "mercado")
		testutil.AssertNoError(t, err)
		testutil.AssertAmount(t, progress.Remaining, "-100.50")
	})

	t.Run("no_goal_set", func(t *testing.T) {
		_, err := service.Progress(user.ID, "viagem")
		if !errors.Is(err, apperrors.ErrGoalNotFound) {
			t.Errorf("expected ErrGoalNotFound, got %v", err)
		}
	})
}

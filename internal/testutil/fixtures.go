package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finbot/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Amount builds a decimal from its string form, failing the test on junk.
func Amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad amount %q: %v", s, err)
	}
	return d
}

// CreateTestUser creates a user with a unique chat ID.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := nextID()
	return CreateTestUserWithChatID(t, db, 100000+n)
}

// CreateTestUserWithChatID creates a user bound to the given chat ID.
func CreateTestUserWithChatID(t *testing.T, db *gorm.DB, chatID int64) *models.User {
	t.Helper()

	user := &models.User{
		Name:           fmt.Sprintf("Test User %d", nextID()),
		TelegramChatID: chatID,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates an account with the given bank and balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID uint, bank, balance string) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:   userID,
		BankName: bank,
		Balance:  Amount(t, balance),
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestExpense creates a transaction dated now in UTC.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, amount, category string) *models.Transaction {
	t.Helper()
	return CreateTestExpenseAt(t, db, userID, amount, category, time.Now().UTC())
}

// CreateTestExpenseAt creates a transaction with an explicit date.
func CreateTestExpenseAt(t *testing.T, db *gorm.DB, userID uint, amount, category string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		Amount:      Amount(t, amount),
		Category:    category,
		Description: fmt.Sprintf("test expense %d", nextID()),
		Date:        date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return tx
}

// CreateTestBill creates a pending scheduled expense.
func CreateTestBill(t *testing.T, db *gorm.DB, userID uint, amount, description string) *models.ScheduledExpense {
	t.Helper()

	bill := &models.ScheduledExpense{
		UserID:      userID,
		Amount:      Amount(t, amount),
		Description: description,
		IsActive:    true,
	}
	if err := db.Create(bill).Error; err != nil {
		t.Fatalf("failed to create test bill: %v", err)
	}
	return bill
}

// CreateTestGoal creates a category goal. The category is stored
// lower-cased, matching the service contract.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID uint, category, amount string) *models.CategoryGoal {
	t.Helper()

	goal := &models.CategoryGoal{
		UserID:     userID,
		Category:   category,
		GoalAmount: Amount(t, amount),
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

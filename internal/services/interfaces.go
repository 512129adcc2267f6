package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finbot/internal/models"
)

// UserServicer defines the contract for identity lookups and registration.
type UserServicer interface {
	GetUserByChatID(chatID int64) (*models.User, error)
	RegisterUser(name string, chatID int64) (*models.User, error)
}

// ExpenseResult is the outcome of recording an expense: the inserted
// transaction and, when a bank was named and matched, the debited account
// with its fresh balance.
type ExpenseResult struct {
	Transaction *models.Transaction
	Account     *models.Account
}

// TransactionServicer defines the contract for the realized-expense log.
type TransactionServicer interface {
	AddExpense(userID uint, amount decimal.Decimal, category, description, bank string) (*ExpenseResult, error)
	ListCategories(userID uint) ([]string, error)
}

// AccountServicer defines the contract for per-bank running balances.
type AccountServicer interface {
	AddIncome(userID uint, bank string, amount decimal.Decimal) (*models.Account, error)
	GetAccounts(userID uint, bank string) ([]models.Account, error)
	// Debit atomically subtracts amount from the account whose bank name
	// matches bank, inside the given transaction handle.
	Debit(tx *gorm.DB, userID uint, bank string, amount decimal.Decimal) (*models.Account, error)
}

// PayBillResult is the outcome of paying a bill: the now-inactive bill
// and, when a bank was named, the debited account.
type PayBillResult struct {
	Bill    *models.ScheduledExpense
	Account *models.Account
}

// BillServicer defines the contract for the scheduled-expense lifecycle.
type BillServicer interface {
	AddBill(userID uint, amount decimal.Decimal, description string, dueDay int) (*models.ScheduledExpense, error)
	ListBills(userID uint, month string) ([]models.ScheduledExpense, error)
	PayBill(userID uint, description, month, bank string) (*PayBillResult, error)
}

// CategoryTotal is one row of a grouped spending report.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// ReportServicer defines the contract for spending aggregates over
// local-time windows.
type ReportServicer interface {
	SumExpenses(userID uint, w Window) (decimal.Decimal, error)
	SumByCategory(userID uint, w Window) ([]CategoryTotal, error)
	TopCategory(userID uint, w Window) (*CategoryTotal, error)
}

// GoalProgress is a goal together with month-to-date spend against it.
type GoalProgress struct {
	Goal      decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
}

// GoalServicer defines the contract for per-category monthly ceilings.
type GoalServicer interface {
	SetGoal(userID uint, category string, amount decimal.Decimal) (*models.CategoryGoal, error)
	// Progress returns ErrGoalNotFound when no ceiling is set for the category.
	Progress(userID uint, category string) (*GoalProgress, error)
}

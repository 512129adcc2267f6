package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finbot/internal/errors"
	"finbot/internal/models"
)

// transactionService handles the immutable expense log.
type transactionService struct {
	db             *gorm.DB
	accountService AccountServicer
	loc            *time.Location
}

// NewTransactionService creates a new TransactionServicer. Occurrence
// timestamps are taken in loc, the bot's configured local zone.
func NewTransactionService(db *gorm.DB, accountService AccountServicer, loc *time.Location) TransactionServicer {
	return &transactionService{
		db:             db,
		accountService: accountService,
		loc:            loc,
	}
}

// AddExpense inserts the transaction and, when a bank was named, debits
// the matching account in the same database transaction. An unmatched
// bank is not an error: the expense is still recorded and the result
// carries a nil account.
func (s *transactionService) AddExpense(userID uint, amount decimal.Decimal, category, description, bank string) (*ExpenseResult, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: strings.TrimSpace(description),
		Date:        time.Now().In(s.loc),
	}

	var debited *models.Account
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if strings.TrimSpace(bank) == "" {
			return nil
		}

		account, err := s.accountService.Debit(tx, userID, bank, amount)
		if err != nil {
			if errors.Is(err, apperrors.ErrAccountNotFound) {
				return nil // best-effort: record the expense without a debit
			}
			return err
		}
		debited = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ExpenseResult{Transaction: transaction, Account: debited}, nil
}

// ListCategories returns the distinct category labels the user has ever
// spent in, lower-cased and ordered alphabetically.
func (s *transactionService) ListCategories(userID uint) ([]string, error) {
	var categories []string
	err := s.db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Distinct("LOWER(category)").
		Order("LOWER(category)").
		Pluck("LOWER(category)", &categories).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "finbot/internal/errors"
	"finbot/internal/matching"
	"finbot/internal/models"
)

// accountService handles per-bank running balances.
type accountService struct {
	db    *gorm.DB
	match matching.Policy
}

// NewAccountService creates a new AccountServicer using the given
// bank-name matching policy.
func NewAccountService(db *gorm.DB, match matching.Policy) AccountServicer {
	return &accountService{db: db, match: match}
}

// AddIncome credits amount to the (user, bank) account, creating the row
// on first income. The increment is a single conflict-clause statement so
// concurrent deposits cannot race on the balance.
func (s *accountService) AddIncome(userID uint, bank string, amount decimal.Decimal) (*models.Account, error) {
	bank = strings.TrimSpace(bank)
	if bank == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "bank name is required")
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	account := &models.Account{UserID: userID, BankName: bank, Balance: amount}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "bank_name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"balance": gorm.Expr("balance + ?", amount)}),
	}).Create(account).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Reload: on the conflict path the struct still holds the pre-upsert balance.
	var fresh models.Account
	if err := s.db.Where("user_id = ? AND bank_name = ?", userID, bank).First(&fresh).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &fresh, nil
}

// GetAccounts lists the user's accounts, optionally narrowed to banks
// matching the given name. Results are ordered by bank name.
func (s *accountService) GetAccounts(userID uint, bank string) ([]models.Account, error) {
	q := s.db.Where("user_id = ?", userID)
	if strings.TrimSpace(bank) != "" {
		cond, arg := s.match.Match("bank_name", bank)
		q = q.Where(cond, arg)
	}

	var accounts []models.Account
	if err := q.Order("bank_name").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// Debit subtracts amount from the first account matching bank, as a single
// conditional update inside the caller's transaction. Returns the account
// with its fresh balance, or ErrAccountNotFound when no bank matches.
func (s *accountService) Debit(tx *gorm.DB, userID uint, bank string, amount decimal.Decimal) (*models.Account, error) {
	cond, arg := s.match.Match("bank_name", bank)

	var account models.Account
	if err := tx.Where("user_id = ?", userID).Where(cond, arg).Order("bank_name").First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := tx.Model(&models.Account{}).
		Where("id = ?", account.ID).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrAccountNotFound
	}

	account.Balance = account.Balance.Sub(amount)
	return &account, nil
}

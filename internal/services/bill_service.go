package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finbot/internal/errors"
	"finbot/internal/matching"
	"finbot/internal/models"
)

// billService handles the scheduled-expense lifecycle: pending on
// creation, paid via PayBill, no way back.
type billService struct {
	db             *gorm.DB
	accountService AccountServicer
	match          matching.Policy
}

// NewBillService creates a new BillServicer using the given description
// matching policy.
func NewBillService(db *gorm.DB, accountService AccountServicer, match matching.Policy) BillServicer {
	return &billService{db: db, accountService: accountService, match: match}
}

// AddBill schedules a new bill in the pending state.
func (s *billService) AddBill(userID uint, amount decimal.Decimal, description string, dueDay int) (*models.ScheduledExpense, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if dueDay < 0 || dueDay > 31 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "due day must be between 1 and 31")
	}

	bill := &models.ScheduledExpense{
		UserID:      userID,
		Amount:      amount,
		Description: description,
		DueDay:      dueDay,
		IsActive:    true,
	}
	if err := s.db.Create(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bill, nil
}

// ListBills returns the user's pending bills, scoped to descriptions
// matching the month token. Paid bills never appear.
func (s *billService) ListBills(userID uint, month string) ([]models.ScheduledExpense, error) {
	q := s.db.Where("user_id = ? AND is_active = ?", userID, true)
	if strings.TrimSpace(month) != "" {
		cond, arg := s.match.Match("description", month)
		q = q.Where(cond, arg)
	}

	var bills []models.ScheduledExpense
	if err := q.Order("id").Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bills, nil
}

// PayBill locates the pending bill matching description (and month, when
// given), marks it paid, and debits the named account. The whole sequence
// runs in one database transaction: if the debit fails, the bill stays
// pending. Paying the same bill twice returns ErrBillNotFound on the
// second call.
func (s *billService) PayBill(userID uint, description, month, bank string) (*PayBillResult, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}

	var bill models.ScheduledExpense
	var debited *models.Account

	err := s.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("user_id = ? AND is_active = ?", userID, true)
		cond, arg := s.match.Match("description", description)
		q = q.Where(cond, arg)
		if strings.TrimSpace(month) != "" {
			mcond, marg := s.match.Match("description", month)
			q = q.Where(mcond, marg)
		}

		if err := q.Order("id").First(&bill).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBillNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		result := tx.Model(&models.ScheduledExpense{}).
			Where("id = ? AND is_active = ?", bill.ID, true).
			UpdateColumn("is_active", false)
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrBillNotFound
		}
		bill.IsActive = false

		if strings.TrimSpace(bank) != "" {
			account, err := s.accountService.Debit(tx, userID, bank, bill.Amount)
			if err != nil {
				return err
			}
			debited = account
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &PayBillResult{Bill: &bill, Account: debited}, nil
}

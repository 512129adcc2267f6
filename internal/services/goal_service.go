package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "finbot/internal/errors"
	"finbot/internal/models"
)

// goalService handles per-category monthly spending ceilings.
type goalService struct {
	db  *gorm.DB
	loc *time.Location
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB, loc *time.Location) GoalServicer {
	return &goalService{db: db, loc: loc}
}

// SetGoal upserts the ceiling for a category: last write wins. Category
// labels are stored lower-cased so lookups stay case-insensitive.
func (s *goalService) SetGoal(userID uint, category string, amount decimal.Decimal) (*models.CategoryGoal, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	goal := &models.CategoryGoal{UserID: userID, Category: category, GoalAmount: amount}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"goal_amount": amount}),
	}).Create(goal).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var fresh models.CategoryGoal
	if err := s.db.Where("user_id = ? AND category = ?", userID, category).First(&fresh).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &fresh, nil
}

// Progress returns the goal for a category together with month-to-date
// spend in that category, computed in the bot's local zone.
func (s *goalService) Progress(userID uint, category string) (*GoalProgress, error) {
	category = strings.ToLower(strings.TrimSpace(category))

	var goal models.CategoryGoal
	if err := s.db.Where("user_id = ? AND category = ?", userID, category).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	start, end := WindowMonth.Bounds(time.Now().In(s.loc))

	var row struct {
		Total decimal.Decimal
	}
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND LOWER(category) = ? AND date >= ? AND date < ?", userID, category, start, end).
		Scan(&row).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &GoalProgress{
		Goal:      goal.GoalAmount,
		Spent:     row.Total,
		Remaining: goal.GoalAmount.Sub(row.Total),
	}, nil
}

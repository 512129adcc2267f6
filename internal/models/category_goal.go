package models

import "github.com/shopspring/decimal"

// CategoryGoal is a per-user monthly spending ceiling for one category.
// Category labels are stored lower-cased so matching stays
// case-insensitive. set_goal upserts: last write wins.
type CategoryGoal struct {
	Base
	UserID     uint            `gorm:"not null;uniqueIndex:idx_goals_user_category" json:"user_id"`
	Category   string          `gorm:"not null;uniqueIndex:idx_goals_user_category" json:"category"`
	GoalAmount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"goal_amount"`
}

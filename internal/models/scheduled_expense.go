package models

import "github.com/shopspring/decimal"

// ScheduledExpense is a bill awaiting payment. IsActive = true means
// pending; paying the bill flips it to false and there is no way back.
// Bills are never physically deleted.
//
// Descriptions often carry a billing period inline ("Aluguel - Março"),
// which is how list_bills and pay_bill scope their lookups.
type ScheduledExpense struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Description string          `gorm:"not null" json:"description"`
	DueDay      int             `json:"due_day,omitempty"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable realized expense. The engine only ever
// inserts rows here; there is no update or delete path.
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Category    string          `gorm:"not null" json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
}

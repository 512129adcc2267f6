package models

import "github.com/shopspring/decimal"

// Account is a per-user running balance for one bank. Rows are created
// implicitly on the first income for a (user, bank) pair and mutated only
// through atomic balance expressions, never read-then-write.
type Account struct {
	Base
	UserID   uint            `gorm:"not null;uniqueIndex:idx_accounts_user_bank" json:"user_id"`
	BankName string          `gorm:"not null;uniqueIndex:idx_accounts_user_bank" json:"bank_name"`
	Balance  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"balance"`
}

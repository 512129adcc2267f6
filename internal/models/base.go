package models

import "time"

// Base contains common columns for all tables. Ledger rows are never
// soft-deleted: transactions are immutable and bills are retired via
// their active flag instead.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

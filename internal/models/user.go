package models

// User binds a Telegram chat to a display name. Users are created through
// the admin API, never by the bot itself; from the engine's perspective the
// record is read-only.
type User struct {
	Base
	Name           string `gorm:"not null" json:"name"`
	TelegramChatID int64  `gorm:"column:telegram_chat_id;uniqueIndex;not null" json:"telegram_chat_id"`

	Transactions      []Transaction      `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
	ScheduledExpenses []ScheduledExpense `gorm:"foreignKey:UserID" json:"scheduled_expenses,omitempty"`
	Accounts          []Account          `gorm:"foreignKey:UserID" json:"accounts,omitempty"`
	CategoryGoals     []CategoryGoal     `gorm:"foreignKey:UserID" json:"category_goals,omitempty"`
}

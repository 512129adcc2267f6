package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finbot/internal/errors"
	"finbot/internal/models"
)

// Window is a reporting time window anchored to the bot's local zone.
type Window string

// Supported report windows.
const (
	WindowToday     Window = "today"
	WindowYesterday Window = "yesterday"
	WindowWeek      Window = "week"
	WindowMonth     Window = "month"
)

// ParseWindow maps a classifier period token to a Window. Portuguese
// synonyms are accepted; anything unrecognized falls back to the current
// month.
func ParseWindow(s string) Window {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today", "day", "hoje":
		return WindowToday
	case "yesterday", "ontem":
		return WindowYesterday
	case "week", "semana":
		return WindowWeek
	default:
		return WindowMonth
	}
}

// Bounds returns the half-open interval [start, end) for the window,
// computed against now. Weeks start on Monday.
func (w Window) Bounds(now time.Time) (time.Time, time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := midnight.AddDate(0, 0, 1)

	switch w {
	case WindowToday:
		return midnight, tomorrow
	case WindowYesterday:
		return midnight.AddDate(0, 0, -1), midnight
	case WindowWeek:
		sinceMonday := (int(now.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -sinceMonday), tomorrow
	default: // WindowMonth
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), tomorrow
	}
}

// Label returns the Portuguese label used in replies.
func (w Window) Label() string {
	switch w {
	case WindowToday:
		return "hoje"
	case WindowYesterday:
		return "ontem"
	case WindowWeek:
		return "essa semana"
	default:
		return "esse mês"
	}
}

// reportService computes spending aggregates. Windows are evaluated in
// the configured fixed offset zone, not server UTC.
type reportService struct {
	db  *gorm.DB
	loc *time.Location
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, loc *time.Location) ReportServicer {
	return &reportService{db: db, loc: loc}
}

// SumExpenses returns total spending in the window, zero when empty.
func (s *reportService) SumExpenses(userID uint, w Window) (decimal.Decimal, error) {
	start, end := w.Bounds(time.Now().In(s.loc))

	var row struct {
		Total decimal.Decimal
	}
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row.Total, nil
}

// SumByCategory returns spending grouped by lower-cased category label,
// largest first.
func (s *reportService) SumByCategory(userID uint, w Window) ([]CategoryTotal, error) {
	start, end := w.Bounds(time.Now().In(s.loc))

	var rows []CategoryTotal
	err := s.db.Model(&models.Transaction{}).
		Select("LOWER(category) AS category, SUM(amount) AS total").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Group("LOWER(category)").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// TopCategory returns the category with the largest spend in the window,
// or nil when the window has no expenses.
func (s *reportService) TopCategory(userID uint, w Window) (*CategoryTotal, error) {
	rows, err := s.SumByCategory(userID, w)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Package intent defines the typed representation of a classified user
// utterance and the client that produces it.
package intent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Action is the closed set of things the bot knows how to do. The
// classifier hands us an arbitrary string; it is decoded into this enum
// exactly once, at the boundary, and never routed as a raw string.
type Action string

const (
	ActionAddExpense     Action = "add_expense"
	ActionAddIncome      Action = "add_income"
	ActionGetBalance     Action = "get_balance"
	ActionAddBill        Action = "add_bill"
	ActionListBills      Action = "list_bills"
	ActionPayBill        Action = "pay_bill"
	ActionGetReport      Action = "get_report"
	ActionReportCategory Action = "report_category"
	ActionTopCategory    Action = "top_category"
	ActionListCategories Action = "list_categories"
	ActionSetGoal        Action = "set_goal"
	ActionChat           Action = "chat"
)

// ParseAction maps a raw tag to an Action. Anything unknown or empty
// degrades to ActionChat, the terminal fallback of the dispatch.
func ParseAction(s string) Action {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case ActionAddExpense, ActionAddIncome, ActionGetBalance,
		ActionAddBill, ActionListBills, ActionPayBill,
		ActionGetReport, ActionReportCategory, ActionTopCategory,
		ActionListCategories, ActionSetGoal, ActionChat:
		return Action(strings.ToLower(strings.TrimSpace(s)))
	default:
		return ActionChat
	}
}

// Intent is a classified utterance: an action plus whichever parameters
// the classifier extracted for it. Absent fields are zero values.
type Intent struct {
	Action      Action          `json:"action"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Bank        string          `json:"bank"`
	Month       string          `json:"month"`
	Period      string          `json:"period"`
	DueDay      int             `json:"due_day"`
}

// HasAmount reports whether the classifier extracted a positive amount.
func (i *Intent) HasAmount() bool {
	return i.Amount.IsPositive()
}

// Decode parses raw classifier output into an Intent. Models frequently
// wrap their JSON in a markdown code fence despite instructions; the
// fence is stripped before parsing. Non-JSON payloads return an error,
// unknown action tags decode to ActionChat.
func Decode(raw []byte) (*Intent, error) {
	cleaned := stripFence(strings.TrimSpace(string(raw)))
	if cleaned == "" {
		return nil, fmt.Errorf("empty classifier response")
	}

	var aux struct {
		Action      string          `json:"action"`
		Amount      json.RawMessage `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Bank        string          `json:"bank"`
		Month       string          `json:"month"`
		Period      string          `json:"period"`
		DueDay      int             `json:"due_day"`
	}
	if err := json.Unmarshal([]byte(cleaned), &aux); err != nil {
		return nil, fmt.Errorf("classifier response is not valid JSON: %w", err)
	}

	in := &Intent{
		Action:      ParseAction(aux.Action),
		Category:    strings.TrimSpace(aux.Category),
		Description: strings.TrimSpace(aux.Description),
		Bank:        strings.TrimSpace(aux.Bank),
		Month:       strings.TrimSpace(aux.Month),
		Period:      strings.TrimSpace(aux.Period),
		DueDay:      aux.DueDay,
	}

	if amt, ok := parseAmount(aux.Amount); ok {
		in.Amount = amt
	}

	return in, nil
}

// parseAmount tolerates numbers, quoted numbers, and null. A value that
// cannot be parsed is treated as absent rather than failing the whole
// intent, since the dispatcher produces a clarifying reply for missing
// amounts anyway.
func parseAmount(raw json.RawMessage) (decimal.Decimal, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return decimal.Zero, false
	}
	s = strings.Trim(s, `"`)
	// Classifiers occasionally emit Brazilian decimal commas.
	s = strings.ReplaceAll(s, ",", ".")
	amt, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return amt, true
}

// stripFence removes a surrounding markdown code fence, if present.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

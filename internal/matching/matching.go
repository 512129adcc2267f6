// Package matching isolates the heuristic used to find bills and accounts
// from free-text input. Handlers never build LIKE patterns themselves, so
// the substring heuristic can be swapped for exact or ranked matching
// without touching dispatch logic.
package matching

import (
	"fmt"
	"strings"
)

// Policy turns a search term into a SQL condition on a column.
type Policy interface {
	// Match returns the condition and its bind argument for matching
	// column against term. The column name must be a trusted literal.
	Match(column, term string) (condition string, arg any)
}

// Substring matches case-insensitively anywhere in the column. LOWER/LIKE
// is used instead of ILIKE so the condition also runs on the sqlite test
// driver.
type Substring struct{}

// Match implements Policy.
func (Substring) Match(column, term string) (string, any) {
	return fmt.Sprintf("LOWER(%s) LIKE ?", column), "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}

// Exact matches the whole column value, case-insensitively.
type Exact struct{}

// Match implements Policy.
func (Exact) Match(column, term string) (string, any) {
	return fmt.Sprintf("LOWER(%s) = ?", column), strings.ToLower(strings.TrimSpace(term))
}

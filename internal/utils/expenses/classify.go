// Package expenses maps free-text payment descriptions onto the seven fixed
// expense heads used by the income statement.
package expenses

import (
	"strings"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// keywordGroup pairs a category with the substrings that select it.
type keywordGroup struct {
	category domain.ExpenseCategory
	keywords []string
}

// groups are checked in strict precedence order; the first match wins.
var groups = []keywordGroup{
	{domain.MaterialExpense, []string{"material", "cement", "steel"}},
	{domain.LabourWages, []string{"labour", "wage", "salary"}},
	{domain.TransportationExpense, []string{"transport", "freight", "delivery"}},
	{domain.AdministrativeExpenses, []string{"admin", "office"}},
	{domain.Utilities, []string{"utility", "electricity", "water"}},
	{domain.Maintenance, []string{"maintenance", "repair"}},
}

// Classify maps a description to exactly one expense category. Matching is a
// case-insensitive substring test; an empty description falls through to
// otherExpenses. The function is total and deterministic so that reports are
// reproducible.
func Classify(description string) domain.ExpenseCategory {
	desc := strings.ToLower(description)
	for _, g := range groups {
		for _, kw := range g.keywords {
			if strings.Contains(desc, kw) {
				return g.category
			}
		}
	}
	return domain.OtherExpenses
}

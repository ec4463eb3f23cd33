package expenses_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sitebooks/site_books_app/internal/core/domain"
	"github.com/sitebooks/site_books_app/internal/utils/expenses"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		description string
		want        domain.ExpenseCategory
	}{
		{"Cement supply for block A", domain.MaterialExpense},
		{"STEEL bars 12mm", domain.MaterialExpense},
		{"Labour wages June", domain.LabourWages},
		{"Monthly salary - site engineer", domain.LabourWages},
		{"Freight charges Karachi", domain.TransportationExpense},
		{"delivery of sand", domain.TransportationExpense},
		{"Office stationery", domain.AdministrativeExpenses},
		{"Admin misc", domain.AdministrativeExpenses},
		{"Electricity bill May", domain.Utilities},
		{"water tanker", domain.Utilities},
		{"Generator repair", domain.Maintenance},
		{"Annual maintenance contract", domain.Maintenance},
		{"Sundry charges", domain.OtherExpenses},
		{"", domain.OtherExpenses},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, expenses.Classify(tt.description))
		})
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// "cement" outranks "delivery"; groups are checked in precedence order.
	assert.Equal(t, domain.MaterialExpense, expenses.Classify("Cement delivery to site"))
	// "labour" outranks "repair".
	assert.Equal(t, domain.LabourWages, expenses.Classify("Labour for roof repair"))
}

package domain

// ExpenseCategory is one of the seven fixed heads an expense is reported under.
type ExpenseCategory string

const (
	MaterialExpense        ExpenseCategory = "materialExpense"
	LabourWages            ExpenseCategory = "labourWages"
	TransportationExpense  ExpenseCategory = "transportationExpense"
	AdministrativeExpenses ExpenseCategory = "administrativeExpenses"
	Utilities              ExpenseCategory = "utilities"
	Maintenance            ExpenseCategory = "maintenance"
	OtherExpenses          ExpenseCategory = "otherExpenses"
)

// ExpenseCategories lists all categories in reporting order.
var ExpenseCategories = []ExpenseCategory{
	MaterialExpense,
	LabourWages,
	TransportationExpense,
	AdministrativeExpenses,
	Utilities,
	Maintenance,
	OtherExpenses,
}

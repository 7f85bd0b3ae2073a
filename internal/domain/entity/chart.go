package entity

import "github.com/shopspring/decimal"

// CategoryChartData aggregates the expenses of one category over a date range.
type CategoryChartData struct {
	CategoryName string          `json:"categoryName"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	ExpenseCount int             `json:"expenseCount"`
	Expenses     []Expense       `json:"expenses"`
}

// DailyExpense aggregates the expenses of one calendar day.
type DailyExpense struct {
	Date           string          `json:"date"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	ExpenseDetails []ExpenseDetail `json:"expenseDetails"`
}

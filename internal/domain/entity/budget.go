package entity

import "github.com/shopspring/decimal"

// Budget is the monthly spending limit of a user. There is at most one per
// (UserID, Month, Year).
type Budget struct {
	ID        int64           `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Remaining decimal.Decimal `json:"remaining"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	UserID    int64           `json:"userId"`
}

// BudgetInput is the payload used to create a budget.
type BudgetInput struct {
	Amount decimal.Decimal `json:"amount"`
	Month  int             `json:"month"`
	Year   int             `json:"year"`
	UserID int64           `json:"userId"`
}

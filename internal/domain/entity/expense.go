package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single spending record. ID is nil until the backend assigns one
// and CategoryID may be missing on legacy rows.
type Expense struct {
	ID         *int64          `json:"id,omitempty"`
	Title      string          `json:"title"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	CategoryID *int64          `json:"categoryId,omitempty"`
	UserID     int64           `json:"userId"`
}

// Day parses Date, accepting both YYYY-MM-DD and RFC 3339 timestamps.
func (e Expense) Day() (time.Time, error) {
	return ParseDay(e.Date)
}

// DayString returns the YYYY-MM-DD part of Date.
func (e Expense) DayString() string {
	return DayOf(e.Date)
}

// DayOf strips the time part of an ISO date or timestamp.
func DayOf(date string) string {
	if i := strings.IndexByte(date, 'T'); i >= 0 {
		return date[:i]
	}
	return date
}

// ExpenseDetail is one line of a DailyExpense.
type ExpenseDetail struct {
	Title        string          `json:"title"`
	Amount       decimal.Decimal `json:"amount"`
	CategoryName string          `json:"categoryName"`
}

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

// ParseDay parses a calendar day in DateLayout or RFC 3339.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if len(s) >= len(DateLayout) {
		if t, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
}

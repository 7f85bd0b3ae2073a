package entity

import "github.com/shopspring/decimal"

func init() {
	// The backend exchanges amounts as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// FormatMoney renders an amount the way every view shows it, e.g. "$1200.00".
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

package entity

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseFilter narrows the expense list. Zero values (empty strings, nil
// pointers) mean "not filtered" and are left out of the query string.
type ExpenseFilter struct {
	UserID     int64
	StartDate  string
	EndDate    string
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	CategoryID *int64
	Month      *int
	Year       *int
}

// Values encodes the filter as query parameters.
func (f ExpenseFilter) Values() url.Values {
	v := url.Values{}
	v.Set("userId", strconv.FormatInt(f.UserID, 10))
	if f.StartDate != "" {
		v.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		v.Set("endDate", f.EndDate)
	}
	if f.MinAmount != nil {
		v.Set("minAmount", f.MinAmount.String())
	}
	if f.MaxAmount != nil {
		v.Set("maxAmount", f.MaxAmount.String())
	}
	if f.CategoryID != nil {
		v.Set("categoryId", strconv.FormatInt(*f.CategoryID, 10))
	}
	if f.Month != nil {
		v.Set("month", strconv.Itoa(*f.Month))
	}
	if f.Year != nil {
		v.Set("year", strconv.Itoa(*f.Year))
	}
	return v
}

// Set updates one field from raw user input. An empty value clears the field.
func (f *ExpenseFilter) Set(field, value string) error {
	value = strings.TrimSpace(value)
	switch field {
	case "startDate":
		return setDate(&f.StartDate, field, value)
	case "endDate":
		return setDate(&f.EndDate, field, value)
	case "minAmount":
		return setAmount(&f.MinAmount, field, value)
	case "maxAmount":
		return setAmount(&f.MaxAmount, field, value)
	case "categoryId":
		if value == "" {
			f.CategoryID = nil
			return nil
		}
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", field, value, err)
		}
		f.CategoryID = &id
		return nil
	case "month":
		return setInt(&f.Month, field, value)
	case "year":
		return setInt(&f.Year, field, value)
	default:
		return fmt.Errorf("unknown expense filter field %q", field)
	}
}

// DateRangeFilter drives the chart and daily overview queries.
type DateRangeFilter struct {
	UserID    int64
	StartDate string
	EndDate   string
}

// Values encodes the filter as query parameters.
func (f DateRangeFilter) Values() url.Values {
	v := url.Values{}
	v.Set("userId", strconv.FormatInt(f.UserID, 10))
	if f.StartDate != "" {
		v.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		v.Set("endDate", f.EndDate)
	}
	return v
}

// Set updates startDate or endDate from raw user input.
func (f *DateRangeFilter) Set(field, value string) error {
	value = strings.TrimSpace(value)
	switch field {
	case "startDate":
		return setDate(&f.StartDate, field, value)
	case "endDate":
		return setDate(&f.EndDate, field, value)
	default:
		return fmt.Errorf("unknown date range field %q", field)
	}
}

// Period is a calendar month, used to address budgets.
type Period struct {
	Month int
	Year  int
}

// CurrentPeriod returns the month containing now.
func CurrentPeriod(now time.Time) Period {
	return Period{Month: int(now.Month()), Year: now.Year()}
}

// Set updates month or year from raw user input.
func (p *Period) Set(field, value string) error {
	value = strings.TrimSpace(value)
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: must be a number", field, value)
	}
	switch field {
	case "month":
		if n < 1 || n > 12 {
			return fmt.Errorf("invalid month %d: must be between 1 and 12", n)
		}
		p.Month = n
	case "year":
		p.Year = n
	default:
		return fmt.Errorf("unknown period field %q", field)
	}
	return nil
}

// String formats the period as YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

func setDate(dst *string, field, value string) error {
	if value == "" {
		*dst = ""
		return nil
	}
	t, err := ParseDay(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	*dst = t.Format(DateLayout)
	return nil
}

func setAmount(dst **decimal.Decimal, field, value string) error {
	if value == "" {
		*dst = nil
		return nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: must be a number", field, value)
	}
	*dst = &d
	return nil
}

func setInt(dst **int, field, value string) error {
	if value == "" {
		*dst = nil
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: must be a number", field, value)
	}
	*dst = &n
	return nil
}

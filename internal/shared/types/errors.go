package types

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotAuthenticated = errors.New("not logged in. Run 'finance-tracker login <email>' first")
	ErrEmailRequired    = errors.New("an email address is required to log in")
	ErrLoginFailed      = errors.New("login failed")
	ErrInvalidAmount    = errors.New("amount must be a valid non-negative number")
	ErrNoBudget         = errors.New("no budget exists for this period")
	ErrUnknownCategory  = errors.New("category not present in the chart data")
	ErrUnknownDay       = errors.New("day not present in the daily overview")
	ErrNoExpenseID      = errors.New("expense has no id")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// BackendMessage returns the message supplied by the backend, if err carries one.
func BackendMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

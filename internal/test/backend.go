// Package test provides an in-memory finance backend for use-case tests.
package test

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/shared/types"
	"github.com/shopspring/decimal"
)

// Backend implements every backend repository in memory. It counts calls
// per method and can be told to fail a method.
type Backend struct {
	mu         sync.Mutex
	users      []entity.User
	expenses   []entity.Expense
	budgets    []entity.Budget
	categories []entity.Category
	reports    []entity.EmailRequest
	calls      map[string]int
	failures   map[string]error
	nextID     int64
}

// NewBackend creates a backend seeded with the given categories.
func NewBackend(categories ...entity.Category) *Backend {
	return &Backend{
		categories: categories,
		calls:      make(map[string]int),
		failures:   make(map[string]error),
		nextID:     100,
	}
}

// DefaultCategories are the categories most tests seed.
func DefaultCategories() []entity.Category {
	return []entity.Category{{ID: 1, Name: "Food"}, {ID: 2, Name: "Housing"}, {ID: 3, Name: "Transport"}}
}

// Calls returns how many times method was invoked.
func (b *Backend) Calls(method string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[method]
}

// ResetCalls zeroes every call counter.
func (b *Backend) ResetCalls() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = make(map[string]int)
}

// Fail makes method return err until Recover is called.
func (b *Backend) Fail(method string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method] = err
}

// Recover removes the failure set for method.
func (b *Backend) Recover(method string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, method)
}

// BadRequest builds the error the HTTP client returns for a 400 response.
func BadRequest(message string) error {
	return &types.APIError{StatusCode: http.StatusBadRequest, Message: message}
}

// ServerError builds the error the HTTP client returns for a 500 response.
func ServerError() error {
	return &types.APIError{StatusCode: http.StatusInternalServerError}
}

func (b *Backend) enter(method string) error {
	b.calls[method]++
	return b.failures[method]
}

func (b *Backend) id() int64 {
	b.nextID++
	return b.nextID
}

// AddUser seeds a user.
func (b *Backend) AddUser(email string) entity.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := entity.User{ID: b.id(), Email: email}
	b.users = append(b.users, u)
	return u
}

// AddExpense seeds an expense and returns it with its id.
func (b *Backend) AddExpense(e entity.Expense) entity.Expense {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.id()
	e.ID = &id
	b.expenses = append(b.expenses, e)
	return e
}

// AddBudget seeds a budget.
func (b *Backend) AddBudget(budget entity.Budget) entity.Budget {
	b.mu.Lock()
	defer b.mu.Unlock()
	budget.ID = b.id()
	b.budgets = append(b.budgets, budget)
	return budget
}

// Reports returns every report request received.
func (b *Backend) Reports() []entity.EmailRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entity.EmailRequest(nil), b.reports...)
}

// Users

func (b *Backend) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("FindByEmail"); err != nil {
		return nil, err
	}
	for _, u := range b.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (b *Backend) CreateWithEmail(ctx context.Context, email string) (*entity.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("CreateWithEmail"); err != nil {
		return nil, err
	}
	u := entity.User{ID: b.id(), Email: email}
	b.users = append(b.users, u)
	return &u, nil
}

// Categories

func (b *Backend) ListCategories(ctx context.Context) ([]entity.Category, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("ListCategories"); err != nil {
		return nil, err
	}
	return append([]entity.Category(nil), b.categories...), nil
}

// Expenses

func (b *Backend) FilterExpenses(ctx context.Context, filter entity.ExpenseFilter) ([]entity.Expense, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("FilterExpenses"); err != nil {
		return nil, err
	}

	result := []entity.Expense{}
	for _, e := range b.expenses {
		if matchesExpense(e, filter) {
			result = append(result, e)
		}
	}
	return result, nil
}

func matchesExpense(e entity.Expense, f entity.ExpenseFilter) bool {
	if e.UserID != f.UserID {
		return false
	}
	day := e.DayString()
	if f.StartDate != "" && day < f.StartDate {
		return false
	}
	if f.EndDate != "" && day > f.EndDate {
		return false
	}
	if f.MinAmount != nil && e.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && e.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	if f.CategoryID != nil && (e.CategoryID == nil || *e.CategoryID != *f.CategoryID) {
		return false
	}
	if f.Month != nil || f.Year != nil {
		t, err := e.Day()
		if err != nil {
			return false
		}
		if f.Month != nil && int(t.Month()) != *f.Month {
			return false
		}
		if f.Year != nil && t.Year() != *f.Year {
			return false
		}
	}
	return true
}

func (b *Backend) CreateExpense(ctx context.Context, expense entity.Expense) (*entity.Expense, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("CreateExpense"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(expense.Title) == "" {
		return nil, BadRequest("Title must not be blank")
	}
	id := b.id()
	expense.ID = &id
	b.expenses = append(b.expenses, expense)
	created := expense
	return &created, nil
}

func (b *Backend) UpdateExpense(ctx context.Context, id int64, expense entity.Expense) (*entity.Expense, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("UpdateExpense"); err != nil {
		return nil, err
	}
	for i, e := range b.expenses {
		if e.ID != nil && *e.ID == id {
			expense.ID = &id
			b.expenses[i] = expense
			updated := expense
			return &updated, nil
		}
	}
	return nil, &types.APIError{StatusCode: http.StatusNotFound, Message: fmt.Sprintf("Expense %d not found", id)}
}

func (b *Backend) DeleteExpense(ctx context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("DeleteExpense"); err != nil {
		return err
	}
	for i, e := range b.expenses {
		if e.ID != nil && *e.ID == id {
			b.expenses = append(b.expenses[:i], b.expenses[i+1:]...)
			return nil
		}
	}
	return &types.APIError{StatusCode: http.StatusNotFound, Message: fmt.Sprintf("Expense %d not found", id)}
}

func (b *Backend) rangeExpenses(f entity.DateRangeFilter) []entity.Expense {
	var result []entity.Expense
	for _, e := range b.expenses {
		if matchesExpense(e, entity.ExpenseFilter{UserID: f.UserID, StartDate: f.StartDate, EndDate: f.EndDate}) {
			result = append(result, e)
		}
	}
	return result
}

func (b *Backend) CategoryChartData(ctx context.Context, filter entity.DateRangeFilter) ([]entity.CategoryChartData, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("CategoryChartData"); err != nil {
		return nil, err
	}

	byName := map[string]*entity.CategoryChartData{}
	var order []string
	for _, e := range b.rangeExpenses(filter) {
		name := entity.CategoryName(b.categories, e.CategoryID)
		row, ok := byName[name]
		if !ok {
			row = &entity.CategoryChartData{CategoryName: name, TotalAmount: decimal.Zero}
			byName[name] = row
			order = append(order, name)
		}
		row.TotalAmount = row.TotalAmount.Add(e.Amount)
		row.ExpenseCount++
		row.Expenses = append(row.Expenses, e)
	}

	result := []entity.CategoryChartData{}
	for _, name := range order {
		result = append(result, *byName[name])
	}
	return result, nil
}

func (b *Backend) DailyOverview(ctx context.Context, filter entity.DateRangeFilter) ([]entity.DailyExpense, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("DailyOverview"); err != nil {
		return nil, err
	}

	byDay := map[string]*entity.DailyExpense{}
	for _, e := range b.rangeExpenses(filter) {
		day := e.DayString()
		row, ok := byDay[day]
		if !ok {
			row = &entity.DailyExpense{Date: day, TotalAmount: decimal.Zero}
			byDay[day] = row
		}
		row.TotalAmount = row.TotalAmount.Add(e.Amount)
		row.ExpenseDetails = append(row.ExpenseDetails, entity.ExpenseDetail{
			Title:        e.Title,
			Amount:       e.Amount,
			CategoryName: entity.CategoryName(b.categories, e.CategoryID),
		})
	}

	result := []entity.DailyExpense{}
	for _, row := range byDay {
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

// Budgets

func (b *Backend) GetUserBudget(ctx context.Context, userID int64, month, year int) (*entity.Budget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("GetUserBudget"); err != nil {
		return nil, err
	}
	for _, budget := range b.budgets {
		if budget.UserID == userID && budget.Month == month && budget.Year == year {
			found := budget
			found.Remaining = budget.Amount.Sub(b.spent(userID, month, year))
			return &found, nil
		}
	}
	return nil, nil
}

func (b *Backend) spent(userID int64, month, year int) decimal.Decimal {
	total := decimal.Zero
	for _, e := range b.expenses {
		if matchesExpense(e, entity.ExpenseFilter{UserID: userID, Month: &month, Year: &year}) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

func (b *Backend) CreateBudget(ctx context.Context, input entity.BudgetInput) (*entity.Budget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("CreateBudget"); err != nil {
		return nil, err
	}
	for _, budget := range b.budgets {
		if budget.UserID == input.UserID && budget.Month == input.Month && budget.Year == input.Year {
			return nil, BadRequest("Budget already exists for this period")
		}
	}
	budget := entity.Budget{
		ID:        b.id(),
		Amount:    input.Amount,
		Remaining: input.Amount,
		Month:     input.Month,
		Year:      input.Year,
		UserID:    input.UserID,
	}
	b.budgets = append(b.budgets, budget)
	created := budget
	return &created, nil
}

func (b *Backend) UpdateBudget(ctx context.Context, id int64, budget entity.Budget) (*entity.Budget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("UpdateBudget"); err != nil {
		return nil, err
	}
	for i, existing := range b.budgets {
		if existing.ID == id {
			budget.ID = id
			b.budgets[i] = budget
			updated := budget
			return &updated, nil
		}
	}
	return nil, &types.APIError{StatusCode: http.StatusNotFound, Message: "Budget not found"}
}

func (b *Backend) DeleteBudget(ctx context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("DeleteBudget"); err != nil {
		return err
	}
	for i, existing := range b.budgets {
		if existing.ID == id {
			b.budgets = append(b.budgets[:i], b.budgets[i+1:]...)
			return nil
		}
	}
	return &types.APIError{StatusCode: http.StatusNotFound, Message: "Budget not found"}
}

// Emails

func (b *Backend) SendReport(ctx context.Context, request entity.EmailRequest) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("SendReport"); err != nil {
		return "", err
	}
	b.reports = append(b.reports, request)
	return "Report sent to " + request.Email, nil
}

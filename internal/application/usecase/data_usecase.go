package usecase

import (
	"context"

	"github.com/diillson/finance-tracker-go/internal/application/query"
	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/domain/repository"
	"github.com/diillson/finance-tracker-go/internal/shared/types"
)

// Query key roots.
const (
	BudgetQuery     = "budget"
	CategoriesQuery = "categories"
	ExpensesQuery   = "expenses"
	ChartQuery      = "categoryChartData"
	DailyQuery      = "dailyExpenses"
)

// BudgetKey is the query key of one user's budget for a period.
func BudgetKey(userID int64, p entity.Period) query.Key {
	return query.NewKey(BudgetQuery, userID, p.Month, p.Year)
}

// CategoriesKey is the query key of the category list.
func CategoriesKey() query.Key {
	return query.NewKey(CategoriesQuery)
}

// ExpensesKey is the query key of a filtered expense list.
func ExpensesKey(f entity.ExpenseFilter) query.Key {
	return query.NewKey(ExpensesQuery, f.Values())
}

// ChartKey is the query key of the category aggregate for a range.
func ChartKey(f entity.DateRangeFilter) query.Key {
	return query.NewKey(ChartQuery, f.Values())
}

// DailyKey is the query key of the daily aggregate for a range.
func DailyKey(f entity.DateRangeFilter) query.Key {
	return query.NewKey(DailyQuery, f.Values())
}

// Reads that depend on expenses, remaining budget included.
var expenseDependents = []query.Key{
	query.NewKey(ExpensesQuery),
	query.NewKey(ChartQuery),
	query.NewKey(DailyQuery),
	query.NewKey(BudgetQuery),
}

var budgetDependents = []query.Key{
	query.NewKey(BudgetQuery),
}

// DataUseCase binds the backend repositories to the query cache: every read
// goes through a keyed query and every write is a mutation that invalidates
// the reads it affects.
type DataUseCase struct {
	cache      *query.Cache
	users      repository.UserRepository
	expenses   repository.ExpenseRepository
	budgets    repository.BudgetRepository
	categories repository.CategoryRepository
	emails     repository.EmailRepository
}

// NewDataUseCase creates a new data use case.
func NewDataUseCase(
	cache *query.Cache,
	users repository.UserRepository,
	expenses repository.ExpenseRepository,
	budgets repository.BudgetRepository,
	categories repository.CategoryRepository,
	emails repository.EmailRepository,
) *DataUseCase {
	return &DataUseCase{
		cache:      cache,
		users:      users,
		expenses:   expenses,
		budgets:    budgets,
		categories: categories,
		emails:     emails,
	}
}

// Cache returns the shared query cache.
func (uc *DataUseCase) Cache() *query.Cache {
	return uc.cache
}

// UserBudget returns the budget of a period, or nil when there is none.
func (uc *DataUseCase) UserBudget(ctx context.Context, userID int64, p entity.Period) (*entity.Budget, error) {
	return query.Get(ctx, uc.cache, BudgetKey(userID, p), func(ctx context.Context) (*entity.Budget, error) {
		return uc.budgets.GetUserBudget(ctx, userID, p.Month, p.Year)
	})
}

func (uc *DataUseCase) Categories(ctx context.Context) ([]entity.Category, error) {
	return query.Get(ctx, uc.cache, CategoriesKey(), uc.categories.ListCategories)
}

func (uc *DataUseCase) Expenses(ctx context.Context, f entity.ExpenseFilter) ([]entity.Expense, error) {
	return query.Get(ctx, uc.cache, ExpensesKey(f), func(ctx context.Context) ([]entity.Expense, error) {
		return uc.expenses.FilterExpenses(ctx, f)
	})
}

func (uc *DataUseCase) CategoryChartData(ctx context.Context, f entity.DateRangeFilter) ([]entity.CategoryChartData, error) {
	return query.Get(ctx, uc.cache, ChartKey(f), func(ctx context.Context) ([]entity.CategoryChartData, error) {
		return uc.expenses.CategoryChartData(ctx, f)
	})
}

func (uc *DataUseCase) DailyExpenses(ctx context.Context, f entity.DateRangeFilter) ([]entity.DailyExpense, error) {
	return query.Get(ctx, uc.cache, DailyKey(f), func(ctx context.Context) ([]entity.DailyExpense, error) {
		return uc.expenses.DailyOverview(ctx, f)
	})
}

// Mutations

func (uc *DataUseCase) CreateExpense(ctx context.Context, e entity.Expense, cb query.Callbacks[*entity.Expense]) (*entity.Expense, error) {
	return query.Mutate(ctx, uc.cache, func(ctx context.Context) (*entity.Expense, error) {
		return uc.expenses.CreateExpense(ctx, e)
	}, query.MutationOptions[*entity.Expense]{Invalidates: expenseDependents, Callbacks: cb})
}

func (uc *DataUseCase) UpdateExpense(ctx context.Context, id int64, e entity.Expense, cb query.Callbacks[*entity.Expense]) (*entity.Expense, error) {
	return query.Mutate(ctx, uc.cache, func(ctx context.Context) (*entity.Expense, error) {
		return uc.expenses.UpdateExpense(ctx, id, e)
	}, query.MutationOptions[*entity.Expense]{Invalidates: expenseDependents, Callbacks: cb})
}

func (uc *DataUseCase) DeleteExpense(ctx context.Context, id int64, cb query.Callbacks[int64]) error {
	_, err := query.Mutate(ctx, uc.cache, func(ctx context.Context) (int64, error) {
		return id, uc.expenses.DeleteExpense(ctx, id)
	}, query.MutationOptions[int64]{Invalidates: expenseDependents, Callbacks: cb})
	return err
}

func (uc *DataUseCase) CreateBudget(ctx context.Context, input entity.BudgetInput, cb query.Callbacks[*entity.Budget]) (*entity.Budget, error) {
	return query.Mutate(ctx, uc.cache, func(ctx context.Context) (*entity.Budget, error) {
		return uc.budgets.CreateBudget(ctx, input)
	}, query.MutationOptions[*entity.Budget]{Invalidates: budgetDependents, Callbacks: cb})
}

func (uc *DataUseCase) UpdateBudget(ctx context.Context, id int64, b entity.Budget, cb query.Callbacks[*entity.Budget]) (*entity.Budget, error) {
	return query.Mutate(ctx, uc.cache, func(ctx context.Context) (*entity.Budget, error) {
		return uc.budgets.UpdateBudget(ctx, id, b)
	}, query.MutationOptions[*entity.Budget]{Invalidates: budgetDependents, Callbacks: cb})
}

func (uc *DataUseCase) DeleteBudget(ctx context.Context, id int64, cb query.Callbacks[int64]) error {
	_, err := query.Mutate(ctx, uc.cache, func(ctx context.Context) (int64, error) {
		return id, uc.budgets.DeleteBudget(ctx, id)
	}, query.MutationOptions[int64]{Invalidates: budgetDependents, Callbacks: cb})
	return err
}

// SendReport asks the backend to e-mail the monthly report. Nothing is invalidated.
func (uc *DataUseCase) SendReport(ctx context.Context, req entity.EmailRequest, cb query.Callbacks[string]) (string, error) {
	return query.Mutate(ctx, uc.cache, func(ctx context.Context) (string, error) {
		return uc.emails.SendReport(ctx, req)
	}, query.MutationOptions[string]{Callbacks: cb})
}

// Login finds the user by e-mail and creates it when the lookup comes back empty.
func (uc *DataUseCase) Login(ctx context.Context, email string, cb query.Callbacks[*entity.User]) (*entity.User, error) {
	return query.Mutate(ctx, uc.cache, func(ctx context.Context) (*entity.User, error) {
		user, err := uc.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user, nil
		}
		user, err = uc.users.CreateWithEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, types.ErrLoginFailed
		}
		return user, nil
	}, query.MutationOptions[*entity.User]{Callbacks: cb})
}

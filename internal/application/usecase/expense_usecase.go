package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diillson/finance-tracker-go/internal/application/query"
	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/shared/types"
	"github.com/shopspring/decimal"
)

// Mensagens da visão de despesas.
const (
	ExpenseSavedMessage    = "Expense added/updated successfully!"
	ExpenseDeletedMessage  = "Expense deleted successfully!"
	UnexpectedErrorMessage = "An unexpected error occurred."
	NoExpensesMessage      = "No expenses found."
	AmountNotNumberMessage = "Amount must be a valid number."
	AmountNegativeMessage  = "Amount must not be negative."
	defaultExpenseCategory = int64(1)
)

// ModalMode is the state of the expense form.
type ModalMode int

const (
	ModalClosed ModalMode = iota
	ModalAdd
	ModalEdit
)

func (m ModalMode) String() string {
	switch m {
	case ModalAdd:
		return "add"
	case ModalEdit:
		return "edit"
	default:
		return "closed"
	}
}

// ExpenseForm is the draft edited in the expense form. Amount is kept as
// typed and only parsed on submit.
type ExpenseForm struct {
	Title      string
	Amount     string
	Date       string
	CategoryID *int64
}

// ExpenseUseCase drives the expense overview: filtered list, add/edit form
// and delete.
type ExpenseUseCase struct {
	alerts
	data   *DataUseCase
	userID int64
	filter *query.Filterable[entity.ExpenseFilter, []entity.Expense]

	mode      ModalMode
	editing   *entity.Expense
	form      ExpenseForm
	formError string
}

// NewExpenseUseCase creates the expense view of userID.
func NewExpenseUseCase(data *DataUseCase, userID int64) *ExpenseUseCase {
	return &ExpenseUseCase{
		data:   data,
		userID: userID,
		filter: query.NewFilterable(data.Cache(),
			func() entity.ExpenseFilter { return entity.ExpenseFilter{UserID: userID} },
			ExpensesKey,
			data.expenses.FilterExpenses,
		),
	}
}

// Filter exposes the draft/applied expense filter.
func (uc *ExpenseUseCase) Filter() *query.Filterable[entity.ExpenseFilter, []entity.Expense] {
	return uc.filter
}

// ApplyFilters makes the draft filter the active one.
func (uc *ExpenseUseCase) ApplyFilters() bool { return uc.filter.Apply() }

// ClearFilters resets both draft and applied filters.
func (uc *ExpenseUseCase) ClearFilters() { uc.filter.Clear() }

// Expenses returns the list for the applied filter.
func (uc *ExpenseUseCase) Expenses(ctx context.Context) ([]entity.Expense, error) {
	return uc.filter.Result(ctx)
}

func (uc *ExpenseUseCase) Categories(ctx context.Context) ([]entity.Category, error) {
	return uc.data.Categories(ctx)
}

// FindExpense looks an expense up by id among all of the user's expenses.
func (uc *ExpenseUseCase) FindExpense(ctx context.Context, id int64) (*entity.Expense, error) {
	expenses, err := uc.data.Expenses(ctx, entity.ExpenseFilter{UserID: uc.userID})
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		if e.ID != nil && *e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, fmt.Errorf("expense %d not found", id)
}

// Mode returns the form state.
func (uc *ExpenseUseCase) Mode() ModalMode { return uc.mode }

// Form returns the form draft.
func (uc *ExpenseUseCase) Form() ExpenseForm { return uc.form }

// FormError returns the error shown inside the open form.
func (uc *ExpenseUseCase) FormError() string { return uc.formError }

// EditForm changes the form draft.
func (uc *ExpenseUseCase) EditForm(fn func(form *ExpenseForm)) { fn(&uc.form) }

// OpenAdd opens an empty form.
func (uc *ExpenseUseCase) OpenAdd() {
	category := defaultExpenseCategory
	uc.mode = ModalAdd
	uc.editing = nil
	uc.formError = ""
	uc.form = ExpenseForm{Amount: "0", CategoryID: &category}
}

// OpenEdit opens the form filled with e.
func (uc *ExpenseUseCase) OpenEdit(e entity.Expense) {
	uc.mode = ModalEdit
	uc.editing = &e
	uc.formError = ""
	uc.form = ExpenseForm{
		Title:      e.Title,
		Amount:     e.Amount.String(),
		Date:       e.DayString(),
		CategoryID: e.CategoryID,
	}
}

// Close discards the form.
func (uc *ExpenseUseCase) Close() {
	uc.mode = ModalClosed
	uc.editing = nil
	uc.formError = ""
	uc.form = ExpenseForm{}
}

// amountError carries the form message and matches types.ErrInvalidAmount.
type amountError string

func (e amountError) Error() string { return string(e) }

func (e amountError) Unwrap() error { return types.ErrInvalidAmount }

// ParseAmount validates a typed amount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, amountError(AmountNotNumberMessage)
	}
	if d.IsNegative() {
		return decimal.Zero, amountError(AmountNegativeMessage)
	}
	return d, nil
}

// Submit creates or updates the expense in the form. On success the form
// closes and an info alert is shown; on failure the form stays open with
// the backend message.
func (uc *ExpenseUseCase) Submit(ctx context.Context) (*entity.Expense, error) {
	if uc.mode == ModalClosed {
		return nil, errors.New("no expense form is open")
	}
	uc.formError = ""

	amount, err := ParseAmount(uc.form.Amount)
	if err != nil {
		uc.formError = err.Error()
		return nil, err
	}

	expense := entity.Expense{
		Title:      strings.TrimSpace(uc.form.Title),
		Amount:     amount,
		Date:       strings.TrimSpace(uc.form.Date),
		CategoryID: uc.form.CategoryID,
		UserID:     uc.userID,
	}

	cb := query.Callbacks[*entity.Expense]{
		OnSuccess: func(*entity.Expense) {
			uc.Close()
			uc.show(AlertInfo, ExpenseSavedMessage)
		},
		OnError: func(err error) { uc.formError = errorMessage(err) },
	}

	if uc.mode == ModalEdit {
		if uc.editing == nil || uc.editing.ID == nil {
			return nil, types.ErrNoExpenseID
		}
		expense.ID = uc.editing.ID
		expense.UserID = uc.editing.UserID
		return uc.data.UpdateExpense(ctx, *uc.editing.ID, expense, cb)
	}
	return uc.data.CreateExpense(ctx, expense, cb)
}

// Delete removes e and reports the outcome as an alert.
func (uc *ExpenseUseCase) Delete(ctx context.Context, e entity.Expense) error {
	uc.DismissAlert()
	if e.ID == nil {
		return types.ErrNoExpenseID
	}

	return uc.data.DeleteExpense(ctx, *e.ID, query.Callbacks[int64]{
		OnSuccess: func(int64) { uc.show(AlertInfo, ExpenseDeletedMessage) },
		OnError:   func(err error) { uc.show(AlertError, errorMessage(err)) },
	})
}

// errorMessage prefers the backend's own message.
func errorMessage(err error) string {
	if msg := types.BackendMessage(err); msg != "" {
		return msg
	}
	return UnexpectedErrorMessage
}

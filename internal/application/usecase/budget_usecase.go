package usecase

import (
	"context"
	"time"

	"github.com/diillson/finance-tracker-go/internal/application/query"
	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/shared/types"
	"github.com/shopspring/decimal"
)

// Mensagens da visão de orçamento.
const (
	BudgetAddedMessage        = "Budget added successfully!"
	BudgetUpdatedMessage      = "Budget updated successfully!"
	BudgetDeletedMessage      = "Budget deleted successfully!"
	BudgetAddFailedMessage    = "Failed to add budget. Please try again."
	BudgetUpdateFailedMessage = "Failed to update budget. Please try again."
	BudgetDeleteFailedMessage = "Failed to delete budget. Please try again."
	BudgetLoadFailedMessage   = "Error loading budget. Please try again."
	ReportNoEmailMessage      = "Email address is not defined. Cannot send the report."
	ReportSentMessage         = "Report sent successfully!"
	ReportFailedMessage       = "Failed to send report. Please try again."

	AddBudgetLabel    = "Add Budget"
	EditBudgetLabel   = "Edit Budget"
	UpdateBudgetLabel = "Update Budget"
)

// BudgetMode alterna entre exibição e edição.
type BudgetMode int

const (
	BudgetDisplay BudgetMode = iota
	BudgetEditing
)

// BudgetView is what the budget card shows for the applied period.
type BudgetView struct {
	Period    entity.Period
	Amount    decimal.Decimal
	Remaining decimal.Decimal
	Exists    bool
	Action    string
}

// BudgetUseCase drives the budget overview of one user.
type BudgetUseCase struct {
	alerts
	data    *DataUseCase
	session entity.Session
	userID  int64
	period  *query.Filterable[entity.Period, *entity.Budget]

	mode        BudgetMode
	amountInput string
}

// NewBudgetUseCase creates the budget view; the period defaults to the month containing now.
func NewBudgetUseCase(data *DataUseCase, session entity.Session, userID int64, now func() time.Time) *BudgetUseCase {
	if now == nil {
		now = time.Now
	}
	return &BudgetUseCase{
		data:    data,
		session: session,
		userID:  userID,
		period: query.NewFilterable(data.Cache(),
			func() entity.Period { return entity.CurrentPeriod(now()) },
			func(p entity.Period) query.Key { return BudgetKey(userID, p) },
			func(ctx context.Context, p entity.Period) (*entity.Budget, error) {
				return data.budgets.GetUserBudget(ctx, userID, p.Month, p.Year)
			},
		),
	}
}

// Period exposes the draft/applied period.
func (uc *BudgetUseCase) Period() *query.Filterable[entity.Period, *entity.Budget] {
	return uc.period
}

func (uc *BudgetUseCase) ApplyFilters() bool { return uc.period.Apply() }

func (uc *BudgetUseCase) ClearFilters() { uc.period.Clear() }

// Budget returns the budget of the applied period, or nil.
func (uc *BudgetUseCase) Budget(ctx context.Context) (*entity.Budget, error) {
	return uc.period.Result(ctx)
}

// View loads the budget card. A load failure raises an error alert.
func (uc *BudgetUseCase) View(ctx context.Context) (BudgetView, error) {
	view := BudgetView{Period: uc.period.Applied(), Action: AddBudgetLabel}

	budget, err := uc.Budget(ctx)
	if err != nil {
		uc.show(AlertError, BudgetLoadFailedMessage)
		return view, err
	}
	if budget != nil {
		view.Amount = budget.Amount
		view.Remaining = budget.Remaining
		view.Exists = true
		view.Action = EditBudgetLabel
	}
	return view, nil
}

// Mode returns display or edit.
func (uc *BudgetUseCase) Mode() BudgetMode { return uc.mode }

// StartEdit switches to edit mode with the current amount pre-filled.
func (uc *BudgetUseCase) StartEdit(ctx context.Context) error {
	budget, err := uc.Budget(ctx)
	if err != nil {
		uc.show(AlertError, BudgetLoadFailedMessage)
		return err
	}
	uc.mode = BudgetEditing
	uc.amountInput = ""
	if budget != nil {
		uc.amountInput = budget.Amount.String()
	}
	return nil
}

// CancelEdit goes back to display mode.
func (uc *BudgetUseCase) CancelEdit() {
	uc.mode = BudgetDisplay
	uc.amountInput = ""
}

// SetAmount updates the typed amount.
func (uc *BudgetUseCase) SetAmount(raw string) { uc.amountInput = raw }

// AmountInput returns the typed amount.
func (uc *BudgetUseCase) AmountInput() string { return uc.amountInput }

// SaveLabel is the label of the save action for the applied period.
func (uc *BudgetUseCase) SaveLabel(ctx context.Context) string {
	budget, err := uc.Budget(ctx)
	if err == nil && budget != nil {
		return UpdateBudgetLabel
	}
	return AddBudgetLabel
}

// Save creates the budget when the period has none and updates it otherwise.
func (uc *BudgetUseCase) Save(ctx context.Context) (*entity.Budget, error) {
	amount, err := ParseAmount(uc.amountInput)
	if err != nil {
		uc.show(AlertError, err.Error())
		return nil, err
	}

	current, err := uc.Budget(ctx)
	if err != nil {
		uc.show(AlertError, BudgetLoadFailedMessage)
		return nil, err
	}

	p := uc.period.Applied()
	if current == nil {
		return uc.data.CreateBudget(ctx, entity.BudgetInput{
			Amount: amount,
			Month:  p.Month,
			Year:   p.Year,
			UserID: uc.userID,
		}, uc.saveCallbacks(BudgetAddedMessage, BudgetAddFailedMessage))
	}

	changed := *current
	changed.Amount = amount
	return uc.data.UpdateBudget(ctx, current.ID, changed, uc.saveCallbacks(BudgetUpdatedMessage, BudgetUpdateFailedMessage))
}

// saveCallbacks leave edit mode on success and report either outcome as an alert.
func (uc *BudgetUseCase) saveCallbacks(success, failure string) query.Callbacks[*entity.Budget] {
	return query.Callbacks[*entity.Budget]{
		OnSuccess: func(*entity.Budget) {
			uc.CancelEdit()
			uc.show(AlertSuccess, success)
		},
		OnError: func(error) { uc.show(AlertError, failure) },
	}
}

// Delete removes the budget of the applied period.
func (uc *BudgetUseCase) Delete(ctx context.Context) error {
	current, err := uc.Budget(ctx)
	if err != nil {
		uc.show(AlertError, BudgetLoadFailedMessage)
		return err
	}
	if current == nil {
		return types.ErrNoBudget
	}

	return uc.data.DeleteBudget(ctx, current.ID, query.Callbacks[int64]{
		OnSuccess: func(int64) {
			uc.CancelEdit()
			uc.show(AlertSuccess, BudgetDeletedMessage)
		},
		OnError: func(error) { uc.show(AlertError, BudgetDeleteFailedMessage) },
	})
}

// SendReport e-mails the report of the applied period to the logged-in address.
func (uc *BudgetUseCase) SendReport(ctx context.Context) (string, error) {
	if uc.session.Email == "" {
		uc.show(AlertError, ReportNoEmailMessage)
		return "", types.ErrEmailRequired
	}

	p := uc.period.Applied()
	msg, err := uc.data.SendReport(ctx, entity.EmailRequest{
		Email:  uc.session.Email,
		UserID: uc.userID,
		Month:  p.Month,
		Year:   p.Year,
	}, query.Callbacks[string]{
		OnSuccess: func(string) { uc.show(AlertSuccess, ReportSentMessage) },
		OnError:   func(error) { uc.show(AlertError, ReportFailedMessage) },
	})
	if err != nil {
		return "", err
	}
	return msg, nil
}

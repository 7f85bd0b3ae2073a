package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/diillson/finance-tracker-go/internal/application/query"
	"github.com/diillson/finance-tracker-go/internal/application/usecase"
	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/shared/types"
)

const (
	actionBack   = "Back"
	actionQuit   = "Quit"
	actionLogout = "Logout"
)

// promptError marca falhas de entrada (Ctrl+C, EOF); elas encerram o dashboard.
type promptError struct{ err error }

func (e promptError) Error() string { return e.err.Error() }
func (e promptError) Unwrap() error { return e.err }

func (app *CLIApp) selectOption(label string, options ...string) (string, error) {
	choice, err := app.console.Select(label, options)
	if err != nil {
		return "", promptError{err}
	}
	return choice, nil
}

func (app *CLIApp) input(label, defaultValue string) (string, error) {
	value, err := app.console.TextInput(label, defaultValue)
	if err != nil {
		return "", promptError{err}
	}
	return value, nil
}

// interactive roda o dashboard até o usuário sair.
func (app *CLIApp) interactive(ctx context.Context) error {
	d := app.services.Dashboard
	for {
		err := d.Open()
		if err == nil {
			break
		}
		if !errors.Is(err, types.ErrNotAuthenticated) {
			return err
		}
		if err := app.promptLogin(ctx); err != nil {
			return err
		}
	}

	app.console.Println()
	app.console.LogInfo("%s", d.Greeting())

	options := make([]string, 0, len(usecase.Sections())+2)
	for _, s := range usecase.Sections() {
		options = append(options, string(s))
	}
	options = append(options, actionLogout, actionQuit)

	for {
		choice, err := app.selectOption("Section", options...)
		if err != nil {
			return err
		}
		switch choice {
		case actionQuit:
			return nil
		case actionLogout:
			if err := app.services.Login.Logout(); err != nil {
				return err
			}
			app.console.LogSuccess("Logged out")
			return nil
		}

		if err := d.SetSection(usecase.Section(choice)); err != nil {
			return err
		}

		switch d.Section() {
		case usecase.SectionExpenses:
			err = app.expensesMenu(ctx, d)
		case usecase.SectionBudgets:
			err = app.budgetMenu(ctx, d)
		case usecase.SectionCharts:
			err = app.chartMenu(ctx, d)
		case usecase.SectionDaily:
			err = app.dailyMenu(ctx, d)
		}
		var pe promptError
		if errors.As(err, &pe) {
			return err
		}
	}
}

// promptLogin pede o e-mail até o login funcionar.
func (app *CLIApp) promptLogin(ctx context.Context) error {
	login := app.services.Login
	for {
		email, err := app.input("Email", "")
		if err != nil {
			return err
		}
		session, err := login.Login(ctx, email)
		if err == nil {
			app.console.LogSuccess("Logged in as %s", session.Email)
			return nil
		}
		if errors.Is(err, types.ErrEmailRequired) {
			app.console.LogWarning("Please enter an email address")
			continue
		}
		app.console.LogError("%s", login.ErrorMessage())
	}
}

// editFilter altera um campo do rascunho do filtro.
func (app *CLIApp) editFilter(setter query.FieldSetter, fields ...string) error {
	field, err := app.selectOption("Field", append(fields, actionBack)...)
	if err != nil || field == actionBack {
		return err
	}
	value, err := app.input(field+" (empty clears)", "")
	if err != nil {
		return err
	}
	if err := setter.Set(field, value); err != nil {
		app.console.LogError("%s", err)
	}
	return nil
}

// logErr mostra erros de negócio e repassa apenas falhas de entrada.
func (app *CLIApp) logErr(err error) error {
	var pe promptError
	if err == nil || errors.As(err, &pe) {
		return err
	}
	app.console.LogError("%s", err)
	return nil
}

func (app *CLIApp) expensesMenu(ctx context.Context, d *usecase.DashboardUseCase) error {
	expenses := d.Expenses()
	for {
		if err := d.RunExpenses(ctx, &types.CLIArgs{}); err != nil {
			app.console.LogDebug("expenses: %s", err)
		}
		if expenses.Filter().Pending() {
			app.console.LogWarning("Filter changes are not applied yet")
		}

		action, err := app.selectOption("Expenses",
			"Edit filter", "Apply filters", "Clear filters", "Add expense", "Edit expense", "Delete expense", "Export", actionBack)
		if err != nil || action == actionBack {
			return err
		}

		switch action {
		case "Edit filter":
			err = app.editFilter(expenses.Filter(), "startDate", "endDate", "minAmount", "maxAmount", "categoryId", "month", "year")
		case "Apply filters":
			expenses.ApplyFilters()
		case "Clear filters":
			expenses.ClearFilters()
		case "Add expense":
			expenses.OpenAdd()
			err = app.expenseForm(ctx, d)
		case "Edit expense":
			var expense *entity.Expense
			if expense, err = app.pickExpense(ctx, expenses); err == nil {
				expenses.OpenEdit(*expense)
				err = app.expenseForm(ctx, d)
			}
		case "Delete expense":
			err = app.deleteExpense(ctx, d)
		case "Export":
			err = d.RunExpenses(ctx, app.args)
		}
		if err = app.logErr(err); err != nil {
			return err
		}
	}
}

func (app *CLIApp) pickExpense(ctx context.Context, expenses *usecase.ExpenseUseCase) (*entity.Expense, error) {
	raw, err := app.input("Expense ID", "")
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid expense id %q", raw)
	}
	return expenses.FindExpense(ctx, id)
}

// expenseForm preenche o formulário aberto e envia. Em caso de erro o
// formulário continua aberto até o usuário desistir.
func (app *CLIApp) expenseForm(ctx context.Context, d *usecase.DashboardUseCase) error {
	expenses := d.Expenses()
	defer expenses.Close()

	categories, err := expenses.Categories(ctx)
	if err != nil {
		app.console.LogWarning("Could not load categories: %s", err)
	}

	for {
		form := expenses.Form()
		if form.Title, err = app.input("Title", form.Title); err != nil {
			return err
		}
		if form.Amount, err = app.input("Amount", form.Amount); err != nil {
			return err
		}
		if form.Date, err = app.input("Date (YYYY-MM-DD)", form.Date); err != nil {
			return err
		}
		if len(categories) > 0 {
			name, err := app.selectOption("Category", categoryOptions(categories, form.CategoryID)...)
			if err != nil {
				return err
			}
			for _, c := range categories {
				if c.Name == name {
					id := c.ID
					form.CategoryID = &id
				}
			}
		}
		expenses.EditForm(func(f *usecase.ExpenseForm) { *f = form })

		if _, err := expenses.Submit(ctx); err == nil {
			d.ShowAlert(expenses)
			return nil
		}
		app.console.LogError("%s", expenses.FormError())

		retry, err := app.console.Confirm("Try again?")
		if err != nil {
			return promptError{err}
		}
		if !retry {
			return nil
		}
	}
}

// categoryOptions lista as categorias com a atual primeiro, onde o cursor
// do select começa.
func categoryOptions(categories []entity.Category, current *int64) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		if current != nil && c.ID == *current {
			names = append([]string{c.Name}, names...)
			continue
		}
		names = append(names, c.Name)
	}
	return names
}

func (app *CLIApp) deleteExpense(ctx context.Context, d *usecase.DashboardUseCase) error {
	expenses := d.Expenses()
	expense, err := app.pickExpense(ctx, expenses)
	if err != nil {
		return err
	}
	ok, err := app.console.Confirm(fmt.Sprintf("Delete %q (%s)?", expense.Title, entity.FormatMoney(expense.Amount)))
	if err != nil {
		return promptError{err}
	}
	if !ok {
		return nil
	}
	err = expenses.Delete(ctx, *expense)
	d.ShowAlert(expenses)
	return err
}

func (app *CLIApp) budgetMenu(ctx context.Context, d *usecase.DashboardUseCase) error {
	budget := d.Budget()
	for {
		if err := d.RunBudget(ctx); err != nil {
			app.console.LogDebug("budget: %s", err)
		}

		save := budget.SaveLabel(ctx)
		action, err := app.selectOption("Budget",
			"Edit period", "Apply period", "Clear period", save, "Delete budget", "Send report", actionBack)
		if err != nil || action == actionBack {
			return err
		}

		switch action {
		case "Edit period":
			err = app.editFilter(budget.Period(), "month", "year")
		case "Apply period":
			budget.ApplyFilters()
		case "Clear period":
			budget.ClearFilters()
		case save:
			if err = budget.StartEdit(ctx); err == nil {
				var amount string
				if amount, err = app.input("Amount", budget.AmountInput()); err == nil {
					budget.SetAmount(amount)
					_, err = budget.Save(ctx)
				} else {
					budget.CancelEdit()
				}
			}
		case "Delete budget":
			var ok bool
			if ok, err = app.console.Confirm("Delete the budget of " + budget.Period().Applied().String() + "?"); err != nil {
				err = promptError{err}
			} else if ok {
				err = budget.Delete(ctx)
			}
		case "Send report":
			_, err = budget.SendReport(ctx)
		}
		d.ShowAlert(budget)
		if err = app.logErr(err); err != nil {
			return err
		}
	}
}

func (app *CLIApp) chartMenu(ctx context.Context, d *usecase.DashboardUseCase) error {
	chart := d.Chart()
	for {
		if err := d.RunChart(ctx, &types.CLIArgs{}, ""); err != nil {
			app.console.LogDebug("chart: %s", err)
		}

		action, err := app.selectOption("Charts",
			"Edit range", "Apply range", "Clear range", "Category details", "Export", actionBack)
		if err != nil || action == actionBack {
			return err
		}

		switch action {
		case "Edit range":
			err = app.editFilter(chart.Filter(), "startDate", "endDate")
		case "Apply range":
			chart.ApplyFilters()
		case "Clear range":
			chart.ClearFilters()
		case "Category details":
			err = app.categoryDetails(ctx, chart)
		case "Export":
			err = d.RunChart(ctx, app.args, "")
		}
		if err = app.logErr(err); err != nil {
			return err
		}
	}
}

func (app *CLIApp) categoryDetails(ctx context.Context, chart *usecase.ChartUseCase) error {
	rows, err := chart.Data(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		app.console.LogInfo(usecase.NoChartDataMessage)
		return nil
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.CategoryName)
	}
	name, err := app.selectOption("Category", names...)
	if err != nil {
		return err
	}
	selected, err := chart.Select(ctx, name)
	if err != nil {
		return err
	}
	defer chart.CloseDetail()

	if len(selected.Expenses) == 0 {
		app.console.LogInfo(usecase.NoCategoryExpenseMessage)
		return nil
	}
	table := app.console.CreateTable()
	table.AddColumn("Title")
	table.AddColumn("Amount", "right")
	table.AddColumn("Date")
	for _, e := range selected.Expenses {
		table.AddRow(e.Title, entity.FormatMoney(e.Amount), e.DayString())
	}
	app.console.Println(fmt.Sprintf("%s: %s", selected.CategoryName, usecase.ExpenseCountLabel(selected.ExpenseCount)))
	app.console.Print(table.Render())
	return nil
}

func (app *CLIApp) dailyMenu(ctx context.Context, d *usecase.DashboardUseCase) error {
	daily := d.Daily()
	for {
		action, err := app.selectOption("Daily overview",
			"Edit range", "Show overview", "Hide overview", "Day details", "Export", actionBack)
		if err != nil || action == actionBack {
			return err
		}

		switch action {
		case "Edit range":
			err = app.editFilter(daily.Filter(), "startDate", "endDate")
		case "Show overview":
			err = d.RunDaily(ctx, &types.CLIArgs{}, "")
		case "Hide overview":
			daily.Hide()
		case "Day details":
			var day string
			if day, err = app.input("Day (YYYY-MM-DD)", ""); err == nil {
				err = d.RunDaily(ctx, &types.CLIArgs{}, day)
			}
		case "Export":
			err = d.RunDaily(ctx, app.args, "")
		}
		if err = app.logErr(err); err != nil {
			return err
		}
	}
}

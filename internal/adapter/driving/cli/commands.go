package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/diillson/finance-tracker-go/internal/application/query"
	"github.com/diillson/finance-tracker-go/internal/application/usecase"
	"github.com/spf13/cobra"
)

// dashboard abre o dashboard da sessão salva.
func (app *CLIApp) dashboard() (*usecase.DashboardUseCase, error) {
	d := app.services.Dashboard
	if err := d.Open(); err != nil {
		return nil, err
	}
	return d, nil
}

// applyFlags copia para o filtro as flags que o usuário informou.
func applyFlags(cmd *cobra.Command, setter query.FieldSetter, fields map[string]string) error {
	for flag, field := range fields {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		value, _ := cmd.Flags().GetString(flag)
		if err := setter.Set(field, value); err != nil {
			return err
		}
	}
	return nil
}

var (
	expenseFilterFlags = map[string]string{
		"start-date": "startDate",
		"end-date":   "endDate",
		"min-amount": "minAmount",
		"max-amount": "maxAmount",
		"category":   "categoryId",
		"month":      "month",
		"year":       "year",
	}
	rangeFlags = map[string]string{
		"start-date": "startDate",
		"end-date":   "endDate",
	}
	periodFlags = map[string]string{
		"month": "month",
		"year":  "year",
	}
)

func (app *CLIApp) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Log in with an email address, creating the account if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			login := app.services.Login
			session, err := login.Login(cmd.Context(), args[0])
			if err != nil {
				if msg := login.ErrorMessage(); msg != "" {
					app.console.LogError("%s", msg)
				}
				return err
			}
			app.console.LogSuccess("Logged in as %s", session.Email)
			return nil
		},
	}
}

func (app *CLIApp) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.services.Login.Logout(); err != nil {
				return err
			}
			app.console.LogSuccess("Logged out")
			return nil
		},
	}
}

func (app *CLIApp) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.dashboard()
			if err != nil {
				return err
			}
			app.console.LogInfo("%s (user %s)", d.Greeting(), d.Session().UserID)
			return nil
		},
	}
}

func (app *CLIApp) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List expense categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.services.Dashboard.RunCategories(cmd.Context())
		},
	}
}

func (app *CLIApp) expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "List and manage expenses",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List expenses, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.dashboard()
			if err != nil {
				return err
			}
			expenses := d.Expenses()
			if err := applyFlags(cmd, expenses.Filter(), expenseFilterFlags); err != nil {
				return err
			}
			expenses.ApplyFilters()
			return d.RunExpenses(cmd.Context(), app.args)
		},
	}
	list.Flags().String("start-date", "", "Only expenses on or after this day (YYYY-MM-DD)")
	list.Flags().String("end-date", "", "Only expenses on or before this day (YYYY-MM-DD)")
	list.Flags().String("min-amount", "", "Minimum amount")
	list.Flags().String("max-amount", "", "Maximum amount")
	list.Flags().String("category", "", "Category id")
	list.Flags().String("month", "", "Month (1-12)")
	list.Flags().String("year", "", "Year")

	add := &cobra.Command{
		Use:   "add",
		Short: "Add an expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.dashboard()
			if err != nil {
				return err
			}
			expenses := d.Expenses()
			expenses.OpenAdd()
			if err := editExpenseForm(cmd, expenses); err != nil {
				return err
			}
			return app.submitExpense(cmd, d)
		},
	}
	addExpenseFormFlags(add)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.dashboard()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid expense id %q", args[0])
			}
			expenses := d.Expenses()
			expense, err := expenses.FindExpense(cmd.Context(), id)
			if err != nil {
				return err
			}
			expenses.OpenEdit(*expense)
			if err := editExpenseForm(cmd, expenses); err != nil {
				return err
			}
			return app.submitExpense(cmd, d)
		},
	}
	addExpenseFormFlags(update)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.dashboard()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid expense id %q", args[0])
			}
			expenses := d.Expenses()
			expense, err := expenses.FindExpense(cmd.Context(), id)
			if err != nil {
				return err
			}
			err = expenses.Delete(cmd.Context(), *expense)
			d.ShowAlert(expenses)
			return err
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}

func addExpenseFormFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Expense title")
	cmd.Flags().String("amount", "", "Expense amount")
	cmd.Flags().String("date", "", "Expense day (YYYY-MM-DD)")
	cmd.Flags().Int64("category", 0, "Category id")
}

func editExpenseForm(cmd *cobra.Command, expenses *usecase.ExpenseUseCase) error {
	flags := cmd.Flags()
	var err error
	expenses.EditForm(func(f *usecase.ExpenseForm) {
		if flags.Changed("title") {
			f.Title, _ = flags.GetString("title")
		}
		if flags.Changed("amount") {
			f.Amount, _ = flags.GetString("amount")
		}
		if flags.Changed("date") {
			f.Date, _ = flags.GetString("date")
		}
		if flags.Changed("category") {
			var id int64
			id, err = flags.GetInt64("category")
			f.CategoryID = &id
		}
	})
	return err
}

func (app *CLIApp) submitExpense(cmd *cobra.Command, d *usecase.DashboardUseCase) error {
	expenses := d.Expenses()
	saved, err := expenses.Submit(cmd.Context())
	if err != nil {
		if msg := expenses.FormError(); msg != "" {
			return errors.New(msg)
		}
		return err
	}
	d.ShowAlert(expenses)
	if saved != nil && saved.ID != nil {
		app.console.LogDebug("Saved expense %d", *saved.ID)
	}
	return nil
}

func (app *CLIApp) budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show and manage the monthly budget",
	}
	cmd.PersistentFlags().String("month", "", "Month (1-12, default: current month)")
	cmd.PersistentFlags().String("year", "", "Year (default: current year)")

	// budgetFor abre o orçamento do período pedido nas flags.
	budgetFor := func(cmd *cobra.Command) (*usecase.DashboardUseCase, *usecase.BudgetUseCase, error) {
		d, err := app.dashboard()
		if err != nil {
			return nil, nil, err
		}
		budget := d.Budget()
		if err := applyFlags(cmd, budget.Period(), periodFlags); err != nil {
			return nil, nil, err
		}
		budget.ApplyFilters()
		return d, budget, nil
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the budget and what is left of it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := budgetFor(cmd)
			if err != nil {
				return err
			}
			return d.RunBudget(cmd.Context())
		},
	}

	set := &cobra.Command{
		Use:   "set <amount>",
		Short: "Create or update the budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, budget, err := budgetFor(cmd)
			if err != nil {
				return err
			}
			if err := budget.StartEdit(cmd.Context()); err != nil {
				d.ShowAlert(budget)
				return err
			}
			budget.SetAmount(args[0])
			_, err = budget.Save(cmd.Context())
			d.ShowAlert(budget)
			if err != nil {
				return err
			}
			return d.RunBudget(cmd.Context())
		},
	}

	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete the budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, budget, err := budgetFor(cmd)
			if err != nil {
				return err
			}
			err = budget.Delete(cmd.Context())
			d.ShowAlert(budget)
			return err
		},
	}

	report := &cobra.Command{
		Use:   "report",
		Short: "E-mail the monthly report to the logged-in address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, budget, err := budgetFor(cmd)
			if err != nil {
				return err
			}
			msg, err := budget.SendReport(cmd.Context())
			d.ShowAlert(budget)
			if err != nil {
				return err
			}
			app.console.LogInfo("%s", msg)
			return nil
		},
	}

	cmd.AddCommand(show, set, del, report)
	return cmd
}

func (app *CLIApp) chartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Show expenses by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.dashboard()
			if err != nil {
				return err
			}
			chart := d.Chart()
			if err := applyFlags(cmd, chart.Filter(), rangeFlags); err != nil {
				return err
			}
			chart.ApplyFilters()
			category, _ := cmd.Flags().GetString("category")
			return d.RunChart(cmd.Context(), app.args, category)
		},
	}
	cmd.Flags().String("start-date", "", "Start of the range (YYYY-MM-DD)")
	cmd.Flags().String("end-date", "", "End of the range (YYYY-MM-DD)")
	cmd.Flags().String("category", "", "Show the expenses of this category")
	return cmd
}

func (app *CLIApp) dailyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Show the daily expense overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.dashboard()
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, d.Daily().Filter(), rangeFlags); err != nil {
				return err
			}
			day, _ := cmd.Flags().GetString("date")
			return d.RunDaily(cmd.Context(), app.args, day)
		},
	}
	cmd.Flags().String("start-date", "", "Start of the range (YYYY-MM-DD)")
	cmd.Flags().String("end-date", "", "End of the range (YYYY-MM-DD)")
	cmd.Flags().String("date", "", "Show the details of this day")
	return cmd
}

func (app *CLIApp) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.interactive(cmd.Context())
		},
	}
}

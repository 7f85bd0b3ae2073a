package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"

	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/domain/repository"
	"github.com/diillson/finance-tracker-go/internal/shared/types"
)

// Section is one tab of the dashboard.
type Section string

const (
	SectionExpenses Section = "expenses"
	SectionCharts   Section = "charts"
	SectionBudgets  Section = "budgets"
	SectionDaily    Section = "daily"
)

// Sections lists the dashboard tabs in display order.
func Sections() []Section {
	return []Section{SectionExpenses, SectionCharts, SectionBudgets, SectionDaily}
}

// DashboardUseCase handles the main dashboard functionality.
type DashboardUseCase struct {
	data       *DataUseCase
	login      *LoginUseCase
	exportRepo repository.ExportRepository
	console    types.ConsoleInterface
	now        func() time.Time

	section  Section
	session  *entity.Session
	userID   int64
	expenses *ExpenseUseCase
	budget   *BudgetUseCase
	chart    *ChartUseCase
	daily    *DailyUseCase
}

// NewDashboardUseCase creates a new dashboard use case.
func NewDashboardUseCase(
	data *DataUseCase,
	login *LoginUseCase,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	now func() time.Time,
) *DashboardUseCase {
	if now == nil {
		now = time.Now
	}
	return &DashboardUseCase{
		data:       data,
		login:      login,
		exportRepo: exportRepo,
		console:    console,
		now:        now,
		section:    SectionExpenses,
	}
}

// Open restores the persisted session and builds the sections. Without a
// session it returns types.ErrNotAuthenticated.
func (uc *DashboardUseCase) Open() error {
	ok, err := uc.login.Restore()
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrNotAuthenticated
	}

	session := uc.login.Session()
	userID, err := session.ID()
	if err != nil {
		return fmt.Errorf("invalid user id %q in session: %w", session.UserID, err)
	}

	// As seções são criadas uma única vez e compartilham o mesmo cache.
	if uc.expenses == nil || uc.userID != userID {
		uc.expenses = NewExpenseUseCase(uc.data, userID)
		uc.budget = NewBudgetUseCase(uc.data, *session, userID, uc.now)
		uc.chart = NewChartUseCase(uc.data, userID)
		uc.daily = NewDailyUseCase(uc.data, userID)
		uc.section = SectionExpenses
	}
	uc.session = session
	uc.userID = userID
	return nil
}

// Session returns the logged-in identity.
func (uc *DashboardUseCase) Session() *entity.Session { return uc.session }

// Greeting is the header line of the dashboard.
func (uc *DashboardUseCase) Greeting() string {
	if uc.session == nil {
		return ""
	}
	return "Welcome, " + uc.session.Email
}

// Section returns the active tab.
func (uc *DashboardUseCase) Section() Section { return uc.section }

// SetSection switches the active tab.
func (uc *DashboardUseCase) SetSection(s Section) error {
	for _, known := range Sections() {
		if s == known {
			uc.section = s
			return nil
		}
	}
	return fmt.Errorf("unknown section %q", s)
}

func (uc *DashboardUseCase) Expenses() *ExpenseUseCase { return uc.expenses }
func (uc *DashboardUseCase) Budget() *BudgetUseCase    { return uc.budget }
func (uc *DashboardUseCase) Chart() *ChartUseCase      { return uc.chart }
func (uc *DashboardUseCase) Daily() *DailyUseCase      { return uc.daily }

// AlertHolder is implemented by every section.
type AlertHolder interface {
	Alert() *Alert
	DismissAlert()
}

// ShowAlert prints the alert of a section and dismisses it.
func (uc *DashboardUseCase) ShowAlert(a AlertHolder) {
	alert := a.Alert()
	if alert == nil {
		return
	}
	uc.console.DisplayAlert(string(alert.Kind), alert.Title, alert.Message)
	a.DismissAlert()
}

// categoriesOrWarn loads categories for display; a failure only degrades the table.
func (uc *DashboardUseCase) categoriesOrWarn(ctx context.Context) []entity.Category {
	categories, err := uc.data.Categories(ctx)
	if err != nil {
		uc.console.LogWarning("Could not load categories: %s", err)
		return nil
	}
	return categories
}

// RunCategories prints the category list.
func (uc *DashboardUseCase) RunCategories(ctx context.Context) error {
	status := uc.console.Status("Loading categories...")
	categories, err := uc.data.Categories(ctx)
	status.Stop()
	if err != nil {
		return err
	}

	table := uc.console.CreateTable()
	table.AddColumn("ID")
	table.AddColumn("Name")
	for _, c := range categories {
		table.AddRow(strconv.FormatInt(c.ID, 10), c.Name)
	}
	uc.console.Print(table.Render())
	return nil
}

// RunExpenses prints the expense list for the applied filter and exports it
// when a report was requested.
func (uc *DashboardUseCase) RunExpenses(ctx context.Context, args *types.CLIArgs) error {
	status := uc.console.Status("Loading expenses...")
	expenses, err := uc.expenses.Expenses(ctx)
	if err != nil {
		status.Stop()
		uc.console.DisplayAlert(string(AlertError), AlertError.DefaultTitle(), errorMessage(err))
		return err
	}
	categories := uc.categoriesOrWarn(ctx)
	status.Stop()

	uc.ShowAlert(uc.expenses)
	if len(expenses) == 0 {
		uc.console.LogInfo(NoExpensesMessage)
		return nil
	}

	table := uc.console.CreateTable()
	table.AddColumn("ID")
	table.AddColumn("Title")
	table.AddColumn("Amount", "right")
	table.AddColumn("Date")
	table.AddColumn("Category")

	total := decimal.Zero
	for _, e := range expenses {
		id := ""
		if e.ID != nil {
			id = strconv.FormatInt(*e.ID, 10)
		}
		table.AddRow(id, e.Title, entity.FormatMoney(e.Amount), e.DayString(), entity.CategoryName(categories, e.CategoryID))
		total = total.Add(e.Amount)
	}
	uc.console.Print(table.Render())
	uc.console.Printf("%s %s\n", pterm.Bold.Sprint("Total:"), entity.FormatMoney(total))

	uc.export(args, "expenses", exporter{
		csv: func() (string, error) {
			return uc.exportRepo.ExportExpensesToCSV(expenses, categories, args.ReportName, args.Dir)
		},
		json: func() (string, error) {
			return uc.exportRepo.ExportExpensesToJSON(expenses, args.ReportName, args.Dir)
		},
		pdf: func() (string, error) {
			return uc.exportRepo.ExportExpensesToPDF(expenses, categories, args.ReportName, args.Dir)
		},
	})
	return nil
}

// RunBudget prints the budget card of the applied period.
func (uc *DashboardUseCase) RunBudget(ctx context.Context) error {
	status := uc.console.Status("Loading budget...")
	view, err := uc.budget.View(ctx)
	status.Stop()
	uc.ShowAlert(uc.budget)
	if err != nil {
		return err
	}

	table := uc.console.CreateTable()
	table.AddColumn("Period")
	table.AddColumn("Budget", "right")
	table.AddColumn("Remaining", "right")
	if view.Exists {
		remaining := entity.FormatMoney(view.Remaining)
		if view.Remaining.IsNegative() {
			remaining = pterm.FgRed.Sprint(remaining)
		} else {
			remaining = pterm.FgGreen.Sprint(remaining)
		}
		table.AddRow(view.Period.String(), entity.FormatMoney(view.Amount), remaining)
	} else {
		table.AddRow(view.Period.String(), entity.FormatMoney(view.Amount), entity.FormatMoney(view.Remaining))
	}
	uc.console.Print(table.Render())
	if !view.Exists {
		uc.console.LogInfo("No budget for %s. Use '%s' to create one.", view.Period, view.Action)
	}
	return nil
}

// RunChart prints the category chart, its summary and, when a category is
// given, that category's expenses.
func (uc *DashboardUseCase) RunChart(ctx context.Context, args *types.CLIArgs, category string) error {
	status := uc.console.Status("Loading chart data...")
	rows, err := uc.chart.Data(ctx)
	status.Stop()
	if err != nil {
		uc.ShowAlert(uc.chart)
		return err
	}

	if len(rows) == 0 {
		uc.console.LogInfo(NoChartDataMessage)
		return nil
	}

	uc.console.DisplayCategoryShares("Expenses by category", CategoryShares(rows))

	table := uc.console.CreateTable()
	table.AddColumn("Category")
	table.AddColumn("Expenses")
	table.AddColumn("Total", "right")
	for _, row := range rows {
		table.AddRow(row.CategoryName, ExpenseCountLabel(row.ExpenseCount), entity.FormatMoney(row.TotalAmount))
	}
	uc.console.Print(table.Render())

	if category != "" {
		selected, err := uc.chart.Select(ctx, category)
		if err != nil {
			return err
		}
		uc.renderCategoryDetail(*selected)
	}

	uc.export(args, "chart data", exporter{
		csv:  func() (string, error) { return uc.exportRepo.ExportChartDataToCSV(rows, args.ReportName, args.Dir) },
		json: func() (string, error) { return uc.exportRepo.ExportChartDataToJSON(rows, args.ReportName, args.Dir) },
		pdf:  func() (string, error) { return uc.exportRepo.ExportChartDataToPDF(rows, args.ReportName, args.Dir) },
	})
	return nil
}

func (uc *DashboardUseCase) renderCategoryDetail(row entity.CategoryChartData) {
	uc.console.Println()
	uc.console.Println(pterm.Bold.Sprintf("%s expenses", row.CategoryName))
	if len(row.Expenses) == 0 {
		uc.console.LogInfo(NoCategoryExpenseMessage)
		return
	}

	table := uc.console.CreateTable()
	table.AddColumn("Title")
	table.AddColumn("Amount", "right")
	table.AddColumn("Date")
	for _, e := range row.Expenses {
		table.AddRow(e.Title, entity.FormatMoney(e.Amount), e.DayString())
	}
	uc.console.Print(table.Render())
}

// RunDaily shows the daily overview for the draft range and, when day is
// given, that day's details.
func (uc *DashboardUseCase) RunDaily(ctx context.Context, args *types.CLIArgs, day string) error {
	status := uc.console.Status("Loading daily overview...")
	rows, err := uc.daily.Show(ctx)
	status.Stop()
	if err != nil {
		uc.ShowAlert(uc.daily)
		return err
	}

	if len(rows) == 0 {
		uc.console.LogInfo(NoDailyExpensesMessage)
		return nil
	}

	table := uc.console.CreateTable()
	table.AddColumn("Date")
	table.AddColumn("Total Amount", "right")
	table.AddColumn("Details")
	for _, row := range rows {
		table.AddRow(entity.DayOf(row.Date), entity.FormatMoney(row.TotalAmount), FormatDetails(row))
	}
	uc.console.Print(table.Render())
	uc.console.DisplayDailyBars(DailyTotals(rows))

	if day != "" {
		selected, err := uc.daily.SelectDay(ctx, day)
		if err != nil {
			return err
		}
		uc.console.Println(pterm.Bold.Sprintf("%s: %s", entity.DayOf(selected.Date), entity.FormatMoney(selected.TotalAmount)))
		for _, d := range selected.ExpenseDetails {
			uc.console.Println("  " + FormatDetail(d))
		}
	}

	uc.export(args, "daily overview", exporter{
		csv:  func() (string, error) { return uc.exportRepo.ExportDailyOverviewToCSV(rows, args.ReportName, args.Dir) },
		json: func() (string, error) { return uc.exportRepo.ExportDailyOverviewToJSON(rows, args.ReportName, args.Dir) },
		pdf:  func() (string, error) { return uc.exportRepo.ExportDailyOverviewToPDF(rows, args.ReportName, args.Dir) },
	})
	return nil
}

type exporter struct {
	csv  func() (string, error)
	json func() (string, error)
	pdf  func() (string, error)
}

// export writes one report per requested type. Failures are logged, never returned.
func (uc *DashboardUseCase) export(args *types.CLIArgs, what string, e exporter) {
	if !args.WantsReport() {
		return
	}
	for _, reportType := range args.ReportType {
		var (
			run   func() (string, error)
			label string
		)
		switch reportType {
		case "csv":
			run, label = e.csv, "CSV"
		case "json":
			run, label = e.json, "JSON"
		case "pdf":
			run, label = e.pdf, "PDF"
		default:
			uc.console.LogWarning("Unsupported report type '%s'", reportType)
			continue
		}

		path, err := run()
		if err != nil {
			uc.console.LogError("Failed to export %s to %s: %s", what, label, err)
		} else {
			uc.console.LogSuccess("Successfully exported %s to %s: %s", what, label, path)
		}
	}
}

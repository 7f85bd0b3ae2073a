package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/diillson/finance-tracker-go/internal/application/usecase"
	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/shared/types"
	"github.com/diillson/finance-tracker-go/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExport records which exports ran.
type fakeExport struct {
	calls []string
	err   error
}

func (f *fakeExport) record(name string) (string, error) {
	f.calls = append(f.calls, name)
	if f.err != nil {
		return "", f.err
	}
	return "/tmp/" + name, nil
}

func (f *fakeExport) ExportExpensesToCSV([]entity.Expense, []entity.Category, string, string) (string, error) {
	return f.record("expenses.csv")
}

func (f *fakeExport) ExportExpensesToJSON([]entity.Expense, string, string) (string, error) {
	return f.record("expenses.json")
}

func (f *fakeExport) ExportExpensesToPDF([]entity.Expense, []entity.Category, string, string) (string, error) {
	return f.record("expenses.pdf")
}

func (f *fakeExport) ExportChartDataToCSV([]entity.CategoryChartData, string, string) (string, error) {
	return f.record("chart.csv")
}

func (f *fakeExport) ExportChartDataToJSON([]entity.CategoryChartData, string, string) (string, error) {
	return f.record("chart.json")
}

func (f *fakeExport) ExportChartDataToPDF([]entity.CategoryChartData, string, string) (string, error) {
	return f.record("chart.pdf")
}

func (f *fakeExport) ExportDailyOverviewToCSV([]entity.DailyExpense, string, string) (string, error) {
	return f.record("daily.csv")
}

func (f *fakeExport) ExportDailyOverviewToJSON([]entity.DailyExpense, string, string) (string, error) {
	return f.record("daily.json")
}

func (f *fakeExport) ExportDailyOverviewToPDF([]entity.DailyExpense, string, string) (string, error) {
	return f.record("daily.pdf")
}

type dashboardFixture struct {
	uc      *usecase.DashboardUseCase
	backend *test.Backend
	console *test.Console
	export  *fakeExport
}

func newDashboard(t *testing.T, session *entity.Session) dashboardFixture {
	t.Helper()
	backend := test.NewBackend(test.DefaultCategories()...)
	seedExpenses(backend)
	data := newData(backend)
	console := test.NewConsole()
	export := &fakeExport{}
	login := usecase.NewLoginUseCase(data, test.NewSessionStore(session))
	return dashboardFixture{
		uc:      usecase.NewDashboardUseCase(data, login, export, console, fixedNow),
		backend: backend,
		console: console,
		export:  export,
	}
}

func TestOpenRequiresSession(t *testing.T) {
	f := newDashboard(t, nil)
	assert.ErrorIs(t, f.uc.Open(), types.ErrNotAuthenticated)
	assert.Nil(t, f.uc.Expenses())
}

func TestOpenBuildsSections(t *testing.T) {
	f := newDashboard(t, &testSession)
	require.NoError(t, f.uc.Open())

	assert.Equal(t, "Welcome, test@example.com", f.uc.Greeting())
	assert.Equal(t, usecase.SectionExpenses, f.uc.Section())
	require.NotNil(t, f.uc.Expenses())
	require.NotNil(t, f.uc.Budget())
	require.NotNil(t, f.uc.Chart())
	require.NotNil(t, f.uc.Daily())

	expenses := f.uc.Expenses()
	require.NoError(t, f.uc.SetSection(usecase.SectionDaily))
	require.NoError(t, f.uc.Open())
	assert.Same(t, expenses, f.uc.Expenses())
	assert.Equal(t, usecase.SectionDaily, f.uc.Section())

	assert.Error(t, f.uc.SetSection("settings"))
}

func TestOpenRejectsBadUserID(t *testing.T) {
	f := newDashboard(t, &entity.Session{UserID: "abc", Email: "test@example.com"})
	assert.Error(t, f.uc.Open())
}

func TestRunExpensesRendersTableAndExports(t *testing.T) {
	f := newDashboard(t, &testSession)
	require.NoError(t, f.uc.Open())

	args := &types.CLIArgs{ReportName: "report", ReportType: []string{"csv", "xml", "pdf"}}
	require.NoError(t, f.uc.RunExpenses(context.Background(), args))

	require.Len(t, f.console.Tables, 1)
	table := f.console.Tables[0]
	assert.Equal(t, []string{"ID", "Title", "Amount", "Date", "Category"}, table.Columns)
	assert.Equal(t, [][]string{
		{"101", "Lunch", "$50.75", "2025-05-02", "Food"},
		{"102", "Rent", "$1200.00", "2025-05-01", "Housing"},
	}, table.Rows)
	assert.True(t, f.console.Contains("$1250.75"))

	assert.Equal(t, []string{"expenses.csv", "expenses.pdf"}, f.export.calls)
	assert.True(t, f.console.Contains("Unsupported report type 'xml'"))
	assert.True(t, f.console.Contains("Successfully exported expenses to CSV: /tmp/expenses.csv"))
}

func TestRunExpensesWithoutReportDoesNotExport(t *testing.T) {
	f := newDashboard(t, &testSession)
	require.NoError(t, f.uc.Open())

	require.NoError(t, f.uc.RunExpenses(context.Background(), &types.CLIArgs{}))
	assert.Empty(t, f.export.calls)
}

func TestRunExpensesExportFailureIsLogged(t *testing.T) {
	f := newDashboard(t, &testSession)
	require.NoError(t, f.uc.Open())
	f.export.err = errors.New("read-only file system")

	args := &types.CLIArgs{ReportName: "report", ReportType: []string{"json"}}
	require.NoError(t, f.uc.RunExpenses(context.Background(), args))
	assert.True(t, f.console.Contains("Failed to export expenses to JSON: read-only file system"))
}

func TestRunExpensesShowsPendingAlert(t *testing.T) {
	f := newDashboard(t, &testSession)
	require.NoError(t, f.uc.Open())
	ctx := context.Background()

	expenses, err := f.uc.Expenses().Expenses(ctx)
	require.NoError(t, err)
	require.NoError(t, f.uc.Expenses().Delete(ctx, expenses[0]))

	require.NoError(t, f.uc.RunExpenses(ctx, &types.CLIArgs{}))
	assert.Equal(t, []string{"info: " + usecase.ExpenseDeletedMessage}, f.console.Alerts)
	assert.Nil(t, f.uc.Expenses().Alert())
}

func TestRunExpensesEmpty(t *testing.T) {
	f := newDashboard(t, &testSession)
	require.NoError(t, f.uc.Open())
	require.NoError(t, f.uc.Expenses().Filter().Set("minAmount", "5000"))
	f.uc.Expenses().ApplyFilters()

	require.NoError(t, f.uc.RunExpenses(context.Background(), &types.CLIArgs{}))
	assert.True(t, f.console.Contains(usecase.NoExpensesMessage))
	assert.Empty(t, f.console.Tables)
}

func TestRunBudget(t *testing.T) {
	f := newDashboard(t, &testSession)
	require.NoError(t, f.uc.Open())
	ctx := context.Background()

	require.NoError(t, f.uc.RunBudget(ctx))
	assert.Equal(t, [][]string{{"2025-05", "$0.00", "$0.00"}}, f.console.Tables[0].Rows)
	assert.True(t, f.console.Contains("No budget for 2025-05"))

	f.backend.AddBudget(entity.Budget{Amount: money("1000"), Month: 4, Year: 2025, UserID: userID})
	require.NoError(t, f.uc.Budget().Period().Set("month", "4"))
	f.uc.Budget().ApplyFilters()
	require.NoError(t, f.uc.RunBudget(ctx))
	require.Len(t, f.console.Tables, 2)
	assert.Equal(t, "$1000.00", f.console.Tables[1].Rows[0][1])
}

func TestRunChartWithCategoryDetail(t *testing.T) {
	f := newDashboard(t, &testSession)
	require.NoError(t, f.uc.Open())

	args := &types.CLIArgs{ReportName: "chart", ReportType: []string{"json"}}
	require.NoError(t, f.uc.RunChart(context.Background(), args, "Food"))

	require.Len(t, f.console.Shares, 1)
	assert.Len(t, f.console.Shares[0], 2)
	require.Len(t, f.console.Tables, 2)
	assert.Equal(t, []string{"Food", "1 expense", "$50.75"}, f.console.Tables[0].Rows[0])
	assert.Equal(t, [][]string{{"Lunch", "$50.75", "2025-05-02"}}, f.console.Tables[1].Rows)
	assert.Equal(t, []string{"chart.json"}, f.export.calls)
}

func TestRunChartUnknownCategory(t *testing.T) {
	f := newDashboard(t, &testSession)
	require.NoError(t, f.uc.Open())

	err := f.uc.RunChart(context.Background(), &types.CLIArgs{}, "Travel")
	assert.ErrorIs(t, err, types.ErrUnknownCategory)
}

func TestRunChartFailureShowsAlert(t *testing.T) {
	f := newDashboard(t, &testSession)
	require.NoError(t, f.uc.Open())
	f.backend.Fail("CategoryChartData", test.ServerError())

	require.Error(t, f.uc.RunChart(context.Background(), &types.CLIArgs{}, ""))
	assert.Equal(t, []string{"error: " + usecase.UnexpectedErrorMessage}, f.console.Alerts)
}

func TestRunDaily(t *testing.T) {
	f := newDashboard(t, &testSession)
	require.NoError(t, f.uc.Open())

	require.NoError(t, f.uc.RunDaily(context.Background(), &types.CLIArgs{}, "2025-05-02"))

	require.Len(t, f.console.Tables, 1)
	assert.Equal(t, [][]string{
		{"2025-05-01", "$1200.00", "Rent: $1200.00 (Housing)"},
		{"2025-05-02", "$50.75", "Lunch: $50.75 (Food)"},
	}, f.console.Tables[0].Rows)
	require.Len(t, f.console.Bars, 1)
	assert.Len(t, f.console.Bars[0], 2)
	assert.True(t, f.console.Contains("Lunch: $50.75 (Food)"))
}

func TestRunDailyEmptyRange(t *testing.T) {
	f := newDashboard(t, &testSession)
	require.NoError(t, f.uc.Open())
	require.NoError(t, f.uc.Daily().Filter().Set("startDate", "2026-01-01"))

	require.NoError(t, f.uc.RunDaily(context.Background(), &types.CLIArgs{}, ""))
	assert.True(t, f.console.Contains(usecase.NoDailyExpensesMessage))
	assert.Empty(t, f.console.Bars)
}

func TestRunCategories(t *testing.T) {
	f := newDashboard(t, &testSession)

	require.NoError(t, f.uc.RunCategories(context.Background()))
	assert.Equal(t, [][]string{{"1", "Food"}, {"2", "Housing"}, {"3", "Transport"}}, f.console.Tables[0].Rows)
}

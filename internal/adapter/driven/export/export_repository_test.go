package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(n int64) *int64 { return &n }

var (
	categories = []entity.Category{{ID: 1, Name: "Food"}, {ID: 2, Name: "Housing"}}
	expenses   = []entity.Expense{
		{ID: id(1), Title: "Lunch", Amount: decimal.RequireFromString("50.75"), Date: "2025-05-02", CategoryID: id(1), UserID: 1},
		{ID: id(2), Title: "Rent", Amount: decimal.RequireFromString("1200"), Date: "2025-05-01T00:00:00Z", CategoryID: id(2), UserID: 1},
	}
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportExpensesToCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := NewExportRepository().ExportExpensesToCSV(expenses, categories, "expenses", dir)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "expenses_"))
	assert.Equal(t, ".csv", filepath.Ext(path))

	assert.Equal(t, [][]string{
		{"ID", "Title", "Amount", "Date", "Category"},
		{"1", "Lunch", "50.75", "2025-05-02", "Food"},
		{"2", "Rent", "1200.00", "2025-05-01", "Housing"},
		{"", "Total", "1250.75", "", ""},
	}, readCSV(t, path))
}

func TestExportExpensesToJSONKeepsNumericAmounts(t *testing.T) {
	path, err := NewExportRepository().ExportExpensesToJSON(expenses, "expenses", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Lunch", decoded[0]["title"])
	assert.Equal(t, 50.75, decoded[0]["amount"])
	assert.Equal(t, float64(1), decoded[0]["categoryId"])
}

func TestExportChartDataToCSV(t *testing.T) {
	data := []entity.CategoryChartData{
		{CategoryName: "Food", TotalAmount: decimal.RequireFromString("50.75"), ExpenseCount: 1, Expenses: expenses[:1]},
		{CategoryName: "Housing", TotalAmount: decimal.RequireFromString("1200"), ExpenseCount: 1, Expenses: expenses[1:]},
	}

	path, err := NewExportRepository().ExportChartDataToCSV(data, "chart", t.TempDir())
	require.NoError(t, err)

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Food", "1", "50.75", "Lunch: $50.75 (2025-05-02)"}, records[1])
	assert.Equal(t, []string{"Housing", "1", "1200.00", "Rent: $1200.00 (2025-05-01)"}, records[2])
}

func TestExportDailyOverviewToCSV(t *testing.T) {
	days := []entity.DailyExpense{{
		Date:        "2025-05-02",
		TotalAmount: decimal.RequireFromString("80.75"),
		ExpenseDetails: []entity.ExpenseDetail{
			{Title: "Lunch", Amount: decimal.RequireFromString("50.75"), CategoryName: "Food"},
			{Title: "Dinner", Amount: decimal.RequireFromString("30"), CategoryName: "Food"},
		},
	}}

	path, err := NewExportRepository().ExportDailyOverviewToCSV(days, "daily", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"Date", "Total Amount", "Details"},
		{"2025-05-02", "80.75", "Lunch: $50.75 (Food)\nDinner: $30.00 (Food)"},
	}, readCSV(t, path))
}

func TestExportPDFs(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	chart := []entity.CategoryChartData{{CategoryName: "Food", TotalAmount: decimal.RequireFromString("50.75"), ExpenseCount: 1, Expenses: expenses[:1]}}
	days := []entity.DailyExpense{{Date: "2025-05-02", TotalAmount: decimal.RequireFromString("50.75"),
		ExpenseDetails: []entity.ExpenseDetail{{Title: "Lunch", Amount: decimal.RequireFromString("50.75"), CategoryName: "Food"}}}}

	paths := make([]string, 0, 3)
	path, err := repo.ExportExpensesToPDF(expenses, categories, "expenses", dir)
	require.NoError(t, err)
	paths = append(paths, path)
	path, err = repo.ExportChartDataToPDF(chart, "chart", dir)
	require.NoError(t, err)
	paths = append(paths, path)
	path, err = repo.ExportDailyOverviewToPDF(days, "daily", dir)
	require.NoError(t, err)
	paths = append(paths, path)

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
		assert.Equal(t, ".pdf", filepath.Ext(p))
	}
}

func TestGenerateFilenameCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports", "may")
	name, err := generateFilename("report", dir, "csv")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(name))
	assert.DirExists(t, dir)
}

func TestCleanRichTags(t *testing.T) {
	assert.Equal(t, "Lunch 12", cleanRichTags("\x1b[31mLunch\x1b[0m [bold]12[/bold]"))
}

package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Despesas ---

func (r *ExportRepositoryImpl) ExportExpensesToCSV(expenses []entity.Expense, categories []entity.Category, filename, outputDir string) (string, error) {
	records := [][]string{{"ID", "Title", "Amount", "Date", "Category"}}
	total := decimal.Zero
	for _, e := range expenses {
		records = append(records, []string{
			expenseID(e),
			cleanRichTags(e.Title),
			e.Amount.StringFixed(2),
			e.DayString(),
			entity.CategoryName(categories, e.CategoryID),
		})
		total = total.Add(e.Amount)
	}
	records = append(records, []string{"", "Total", total.StringFixed(2), "", ""})

	return writeCSV(records, filename, outputDir, "expenses")
}

func (r *ExportRepositoryImpl) ExportExpensesToJSON(expenses []entity.Expense, filename, outputDir string) (string, error) {
	return writeJSON(expenses, filename, outputDir, "expenses")
}

func (r *ExportRepositoryImpl) ExportExpensesToPDF(expenses []entity.Expense, categories []entity.Category, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	rep := newPDFReport("Expenses", fmt.Sprintf("%d expenses", len(expenses)))
	widths := []float64{20, 70, 30, 30, 40}
	rep.tableHeader(widths, "ID", "Title", "Amount", "Date", "Category")

	total := decimal.Zero
	for _, e := range expenses {
		rep.tableRow(widths, expenseID(e), cleanRichTags(e.Title), entity.FormatMoney(e.Amount), e.DayString(), entity.CategoryName(categories, e.CategoryID))
		total = total.Add(e.Amount)
	}
	rep.total(widths[0]+widths[1], entity.FormatMoney(total))

	return rep.save(outputFilename)
}

// --- Gráfico por categoria ---

func (r *ExportRepositoryImpl) ExportChartDataToCSV(data []entity.CategoryChartData, filename, outputDir string) (string, error) {
	records := [][]string{{"Category", "Expense Count", "Total Amount", "Expenses"}}
	for _, row := range data {
		records = append(records, []string{
			cleanRichTags(row.CategoryName),
			strconv.Itoa(row.ExpenseCount),
			row.TotalAmount.StringFixed(2),
			expenseSummary(row.Expenses),
		})
	}

	return writeCSV(records, filename, outputDir, "chart data")
}

func (r *ExportRepositoryImpl) ExportChartDataToJSON(data []entity.CategoryChartData, filename, outputDir string) (string, error) {
	return writeJSON(data, filename, outputDir, "chart data")
}

func (r *ExportRepositoryImpl) ExportChartDataToPDF(data []entity.CategoryChartData, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	rep := newPDFReport("Expenses by Category", fmt.Sprintf("%d categories", len(data)))
	widths := []float64{90, 50, 50}
	rep.tableHeader(widths, "Category", "Expenses", "Total")

	total := decimal.Zero
	for _, row := range data {
		rep.tableRow(widths, cleanRichTags(row.CategoryName), strconv.Itoa(row.ExpenseCount), entity.FormatMoney(row.TotalAmount))
		total = total.Add(row.TotalAmount)
	}
	rep.total(widths[0]+widths[1], entity.FormatMoney(total))

	for _, row := range data {
		rep.section(row.CategoryName, expenseSummary(row.Expenses))
	}

	return rep.save(outputFilename)
}

// --- Visão diária ---

func (r *ExportRepositoryImpl) ExportDailyOverviewToCSV(days []entity.DailyExpense, filename, outputDir string) (string, error) {
	records := [][]string{{"Date", "Total Amount", "Details"}}
	for _, day := range days {
		records = append(records, []string{
			entity.DayOf(day.Date),
			day.TotalAmount.StringFixed(2),
			detailSummary(day.ExpenseDetails),
		})
	}

	return writeCSV(records, filename, outputDir, "daily overview")
}

func (r *ExportRepositoryImpl) ExportDailyOverviewToJSON(days []entity.DailyExpense, filename, outputDir string) (string, error) {
	return writeJSON(days, filename, outputDir, "daily overview")
}

func (r *ExportRepositoryImpl) ExportDailyOverviewToPDF(days []entity.DailyExpense, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	rep := newPDFReport("Daily Expenses", fmt.Sprintf("%d days", len(days)))
	widths := []float64{40, 40, 110}
	rep.tableHeader(widths, "Date", "Total Amount", "Details")

	total := decimal.Zero
	for _, day := range days {
		rep.tableRow(widths, entity.DayOf(day.Date), entity.FormatMoney(day.TotalAmount), fmt.Sprintf("%d items", len(day.ExpenseDetails)))
		total = total.Add(day.TotalAmount)
	}
	rep.total(widths[0], entity.FormatMoney(total))

	for _, day := range days {
		rep.section(entity.DayOf(day.Date), detailSummary(day.ExpenseDetails))
	}

	return rep.save(outputFilename)
}

// --- Helpers ---

func expenseID(e entity.Expense) string {
	if e.ID == nil {
		return ""
	}
	return strconv.FormatInt(*e.ID, 10)
}

func expenseSummary(expenses []entity.Expense) string {
	s := ""
	for i, e := range expenses {
		if i > 0 {
			s += "\n"
		}
		s += fmt.Sprintf("%s: %s (%s)", cleanRichTags(e.Title), entity.FormatMoney(e.Amount), e.DayString())
	}
	return s
}

func detailSummary(details []entity.ExpenseDetail) string {
	s := ""
	for i, d := range details {
		if i > 0 {
			s += "\n"
		}
		s += fmt.Sprintf("%s: %s (%s)", cleanRichTags(d.Title), entity.FormatMoney(d.Amount), d.CategoryName)
	}
	return s
}

func writeCSV(records [][]string, filename, outputDir, what string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating %s CSV file: %w", what, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		return "", fmt.Errorf("error writing %s CSV file: %w", what, err)
	}

	return filepath.Abs(outputFilename)
}

func writeJSON(data interface{}, filename, outputDir, what string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating %s JSON file: %w", what, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return "", fmt.Errorf("error encoding %s JSON data: %w", what, err)
	}

	return filepath.Abs(outputFilename)
}

func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}

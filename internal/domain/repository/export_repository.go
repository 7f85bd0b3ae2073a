package repository

import (
	"github.com/diillson/finance-tracker-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportExpensesToCSV(expenses []entity.Expense, categories []entity.Category, filename, outputDir string) (string, error)
	ExportExpensesToJSON(expenses []entity.Expense, filename, outputDir string) (string, error)
	ExportExpensesToPDF(expenses []entity.Expense, categories []entity.Category, filename, outputDir string) (string, error)

	// Chart data
	ExportChartDataToCSV(data []entity.CategoryChartData, filename, outputDir string) (string, error)
	ExportChartDataToJSON(data []entity.CategoryChartData, filename, outputDir string) (string, error)
	ExportChartDataToPDF(data []entity.CategoryChartData, filename, outputDir string) (string, error)

	// Daily overview
	ExportDailyOverviewToCSV(days []entity.DailyExpense, filename, outputDir string) (string, error)
	ExportDailyOverviewToJSON(days []entity.DailyExpense, filename, outputDir string) (string, error)
	ExportDailyOverviewToPDF(days []entity.DailyExpense, filename, outputDir string) (string, error)
}

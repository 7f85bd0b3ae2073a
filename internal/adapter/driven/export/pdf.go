package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

var (
	headerColor     = [3]int{0, 102, 204}
	headerTextColor = [3]int{255, 255, 255}
	bodyTextColor   = [3]int{50, 50, 50}
	lineColor       = [3]int{200, 200, 200}
)

// pdfReport é uma página A4 com cabeçalho, tabela e seções de texto.
type pdfReport struct {
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	title string
}

func newPDFReport(title, subtitle string) *pdfReport {
	pdf := gofpdf.New("P", "mm", "A4", "")
	rep := &pdfReport{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), title: title}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by Finance Tracker | %s", time.Now().Format("2006-01-02"))
		pdf.CellFormat(0, 10, rep.tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, rep.tr(fmt.Sprintf("Page %d", pdf.PageNo())), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	// Cabeçalho
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, rep.tr("  "+title), "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, rep.tr("  "+subtitle), "", 1, "L", true, 0, "")
	pdf.Ln(8)
	return rep
}

func (r *pdfReport) tableHeader(widths []float64, columns ...string) {
	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.SetFillColor(220, 220, 220)
	r.pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	for i, col := range columns {
		r.pdf.CellFormat(widths[i], 8, r.tr(col), "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) tableRow(widths []float64, cells ...string) {
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	for i, cell := range cells {
		if len(cell) > 60 {
			cell = cell[:57] + "..."
		}
		r.pdf.CellFormat(widths[i], 7, r.tr(cell), "1", 0, "L", false, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) total(labelWidth float64, value string) {
	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.CellFormat(labelWidth, 8, r.tr("Total"), "1", 0, "R", false, 0, "")
	r.pdf.CellFormat(0, 8, r.tr(value), "1", 1, "L", false, 0, "")
	r.pdf.Ln(8)
}

func (r *pdfReport) section(title, content string) {
	content = cleanRichTags(content)
	if strings.TrimSpace(content) == "" {
		return
	}
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.Cell(0, 8, r.tr(title))
	r.pdf.Ln(7)

	r.pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	r.pdf.Line(r.pdf.GetX(), r.pdf.GetY(), r.pdf.GetX()+190, r.pdf.GetY())
	r.pdf.Ln(4)

	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	r.pdf.MultiCell(190, 5, r.tr(content), "", "L", false)
	r.pdf.Ln(8)
}

func (r *pdfReport) save(outputFilename string) (string, error) {
	if err := r.pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing %s PDF file: %w", strings.ToLower(r.title), err)
	}
	return filepath.Abs(outputFilename)
}

package console

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/pterm/pterm"

	"github.com/diillson/finance-tracker-go/internal/shared/types"
)

// Console é uma implementação do ConsoleInterface.
type Console struct{}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// EnableDebug liga as mensagens de debug do pterm.
func EnableDebug() {
	pterm.EnableDebugMessages()
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// LogDebug registra uma mensagem de debug (só aparece com --debug).
func (c *Console) LogDebug(format string, a ...interface{}) {
	pterm.Debug.Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start(message)
	return &statusHandle{spinner: spinner}
}

// Cores predefinidas para uso consistente
var (
	BrightMagenta = color.New(color.FgMagenta, color.Bold).SprintFunc()
	BoldRed       = color.New(color.FgRed, color.Bold).SprintFunc()
	BrightGreen   = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightYellow  = color.New(color.FgYellow, color.Bold).SprintFunc()
	BrightCyan    = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		_ = h.spinner.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	right   []bool
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela. A opção "right" alinha a coluna à direita.
func (t *Table) AddColumn(name string, options ...interface{}) {
	right := false
	for _, opt := range options {
		if s, ok := opt.(string); ok && s == "right" {
			right = true
		}
	}
	t.columns = append(t.columns, name)
	t.right = append(t.right, right)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	// Convertemos cada célula para string
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	widths := make([]int, len(t.columns))
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := visibleWidth(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		aligned := make([]string, len(row))
		for i, cell := range row {
			if i < len(t.right) && t.right[i] && !strings.Contains(cell, "\n") {
				cell = strings.Repeat(" ", widths[i]-visibleWidth(cell)) + cell
			}
			aligned[i] = cell
		}
		tableData = append(tableData, aligned)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

func visibleWidth(s string) int {
	return runewidth.StringWidth(pterm.RemoveColorFromString(s))
}

var shareColors = []pterm.Color{pterm.FgBlue, pterm.FgGreen, pterm.FgYellow, pterm.FgMagenta, pterm.FgCyan, pterm.FgRed}

// DisplayCategoryShares exibe a participação de cada categoria como barras
// horizontais proporcionais ao número de despesas.
func (c *Console) DisplayCategoryShares(title string, shares []types.CategoryShare) {
	totalCount := 0
	for _, s := range shares {
		totalCount += s.Count
	}
	if totalCount == 0 {
		pterm.Warning.Println("All categories are empty for this period")
		return
	}

	tableData := pterm.TableData{
		{"Category", "Share", "", "Total"},
	}
	for i, s := range shares {
		share := float64(s.Count) / float64(totalCount)
		bar := strings.Repeat("█", int(share*40))
		style := shareColors[i%len(shareColors)]
		tableData = append(tableData, []string{
			style.Sprint(s.Name),
			fmt.Sprintf("%5.1f%%", share*100),
			style.Sprint(bar),
			fmt.Sprintf("$%.2f", s.Total),
		})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	panel := pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)
	fmt.Println("\n" + panel)
}

// DisplayDailyBars exibe o total de cada dia como gráfico de barras.
func (c *Console) DisplayDailyBars(days []types.DailyTotal) {
	maxTotal := 0.0
	for _, d := range days {
		if d.Total > maxTotal {
			maxTotal = d.Total
		}
	}

	if maxTotal == 0 {
		pterm.Warning.Println("All daily totals are $0.00 for this range")
		return
	}

	sorted := append([]types.DailyTotal(nil), days...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	tableData := pterm.TableData{
		{"Date", "Total", ""},
	}
	for _, d := range sorted {
		barLength := int((d.Total / maxTotal) * 40)
		bar := strings.Repeat("█", barLength)

		// O dia de maior gasto fica em vermelho
		barColor := pterm.FgBlue.Sprint(bar)
		if d.Total == maxTotal {
			barColor = pterm.FgRed.Sprint(bar)
		}

		tableData = append(tableData, []string{
			d.Date,
			fmt.Sprintf("$%.2f", d.Total),
			barColor,
		})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	panel := pterm.DefaultBox.WithTitle("Daily Expenses").WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)
	fmt.Println("\n" + panel)
}

// DisplayAlert exibe um alerta em uma caixa colorida conforme o tipo.
func (c *Console) DisplayAlert(kind, title, message string) {
	style := pterm.NewStyle(pterm.FgCyan)
	switch kind {
	case "error":
		style = pterm.NewStyle(pterm.FgRed)
	case "success":
		style = pterm.NewStyle(pterm.FgGreen)
	case "warning":
		style = pterm.NewStyle(pterm.FgYellow)
	}
	box := pterm.DefaultBox.
		WithTitle(style.Sprint(title)).
		WithBoxStyle(style).
		Sprint(message)
	fmt.Println(box)
}

// Select pede para o usuário escolher uma das opções.
func (c *Console) Select(label string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.
		WithDefaultText(label).
		WithOptions(options).
		WithMaxHeight(10).
		Show()
}

// TextInput lê uma linha de texto, com valor padrão opcional.
func (c *Console) TextInput(label, defaultValue string) (string, error) {
	input := pterm.DefaultInteractiveTextInput.WithDefaultText(label)
	if defaultValue != "" {
		input = input.WithDefaultValue(defaultValue)
	}
	return input.Show()
}

// Confirm pede uma confirmação sim/não.
func (c *Console) Confirm(label string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.WithDefaultText(label).Show()
}

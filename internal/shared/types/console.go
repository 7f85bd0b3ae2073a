package types

// ConsoleInterface define a interface para saída no console.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})
	LogDebug(format string, a ...interface{})

	Status(message string) StatusHandle

	CreateTable() TableInterface
	DisplayCategoryShares(title string, shares []CategoryShare)
	DisplayDailyBars(days []DailyTotal)
	DisplayAlert(kind, title, message string)

	Select(label string, options []string) (string, error)
	TextInput(label, defaultValue string) (string, error)
	Confirm(label string) (bool, error)
}

// StatusHandle é uma interface para atualizar uma mensagem de status.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// TableInterface define a interface para criar e manipular tabelas.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}

// CategoryShare é uma fatia do gráfico de categorias.
type CategoryShare struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// DailyTotal representa o total gasto em um dia, usado no gráfico de barras diário.
type DailyTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

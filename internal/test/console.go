package test

import (
	"fmt"
	"strings"
	"sync"

	"github.com/diillson/finance-tracker-go/internal/shared/types"
)

// Console records everything written to it. Interactive prompts answer from
// the Answers queue.
type Console struct {
	mu      sync.Mutex
	Lines   []string
	Alerts  []string
	Shares  [][]types.CategoryShare
	Bars    [][]types.DailyTotal
	Tables  []*Table
	Answers []string
}

func NewConsole() *Console {
	return &Console{}
}

func (c *Console) record(kind, format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Lines = append(c.Lines, kind+": "+fmt.Sprintf(format, a...))
}

func (c *Console) Print(a ...interface{})                 { c.record("print", "%s", fmt.Sprint(a...)) }
func (c *Console) Printf(format string, a ...interface{}) { c.record("print", format, a...) }
func (c *Console) Println(a ...interface{})               { c.record("print", "%s", fmt.Sprint(a...)) }

func (c *Console) LogInfo(format string, a ...interface{})    { c.record("info", format, a...) }
func (c *Console) LogWarning(format string, a ...interface{}) { c.record("warning", format, a...) }
func (c *Console) LogError(format string, a ...interface{})   { c.record("error", format, a...) }
func (c *Console) LogSuccess(format string, a ...interface{}) { c.record("success", format, a...) }
func (c *Console) LogDebug(format string, a ...interface{})   { c.record("debug", format, a...) }

type status struct{}

func (status) Update(string) {}
func (status) Stop()         {}

func (c *Console) Status(message string) types.StatusHandle { return status{} }

func (c *Console) CreateTable() types.TableInterface {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &Table{}
	c.Tables = append(c.Tables, t)
	return t
}

func (c *Console) DisplayCategoryShares(title string, shares []types.CategoryShare) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Shares = append(c.Shares, shares)
}

func (c *Console) DisplayDailyBars(days []types.DailyTotal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Bars = append(c.Bars, days)
}

func (c *Console) DisplayAlert(kind, title, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Alerts = append(c.Alerts, kind+": "+message)
}

func (c *Console) next() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Answers) == 0 {
		return "", fmt.Errorf("no answer queued")
	}
	answer := c.Answers[0]
	c.Answers = c.Answers[1:]
	return answer, nil
}

func (c *Console) Select(label string, options []string) (string, error) { return c.next() }
func (c *Console) TextInput(label, defaultValue string) (string, error)  { return c.next() }

func (c *Console) Confirm(label string) (bool, error) {
	answer, err := c.next()
	return answer == "y", err
}

// Contains reports whether any recorded line contains s.
func (c *Console) Contains(s string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.Lines {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

// Table records columns and rows.
type Table struct {
	Columns []string
	Rows    [][]string
}

func (t *Table) AddColumn(name string, options ...interface{}) {
	t.Columns = append(t.Columns, name)
}

func (t *Table) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, cell := range cells {
		row[i] = fmt.Sprint(cell)
	}
	t.Rows = append(t.Rows, row)
}

func (t *Table) Render() string {
	return strings.Join(t.Columns, " | ")
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

var (
	headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle      = lipgloss.NewStyle().PaddingRight(1)
	borderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return systemError("marshal JSON", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printTable renders rows under headers. empty is printed instead when
// there are no rows.
func printTable(w io.Writer, empty string, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerRowStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}

// printFields writes label/value pairs, one per line.
func printFields(w io.Writer, fields [][2]string) {
	width := 0
	for _, f := range fields {
		width = max(width, len(f[0]))
	}
	for _, f := range fields {
		fmt.Fprintln(w, cyan(fmt.Sprintf("%-*s", width+1, f[0]+":")), f[1])
	}
}

// done prints a success line, or v as JSON in JSON mode.
func (a *app) done(w io.Writer, v any, format string, args ...any) error {
	if a.jsonMode {
		return printJSON(w, v)
	}
	fmt.Fprintln(w, green(fmt.Sprintf(format, args...)))
	return nil
}

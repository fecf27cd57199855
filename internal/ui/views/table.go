package views

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableRenderer draws record lists and report tables
type TableRenderer struct {
	styles *Styles
}

// NewTableRenderer creates a new table renderer
func NewTableRenderer(styles *Styles) *TableRenderer {
	return &TableRenderer{styles: styles}
}

// Render draws headers and rows; selected < 0 highlights nothing. A width
// of 0 lets the table size itself.
func (tr *TableRenderer) Render(headers []string, rows [][]string, selected, width int) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tr.styles.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tr.styles.Header
			}
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == selected {
				style = style.Inherit(tr.styles.SelectionBg).Bold(true)
			}
			return style
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.Render()
}

// RenderPlain draws a table without selection, for the pager and the CLI
func RenderPlain(headers []string, rows [][]string) string {
	return NewTableRenderer(NewStyles()).Render(headers, rows, -1, 0)
}

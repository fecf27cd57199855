package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DetailLine is one label/value pair
type DetailLine struct {
	Label string
	Value string
}

// DetailView is the read-only view of one record
type DetailView struct {
	Title string
	Lines []DetailLine
}

// HistoryEntry is one rendered error history row
type HistoryEntry struct {
	Operation string
	Message   string
	At        time.Time
}

func (r *Renderer) renderDetail(d DetailView) string {
	labelWidth := 0
	for _, l := range d.Lines {
		if w := lipgloss.Width(l.Label); w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder
	b.WriteString(r.styles.Title.Render(d.Title))
	b.WriteString("\n\n")
	for _, l := range d.Lines {
		value := l.Value
		if value == "" {
			value = r.styles.Dim.Render("-")
		}
		b.WriteString(r.styles.Label.Width(labelWidth).Render(l.Label))
		b.WriteString("  ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render("e editar • r reportes • esc volver"))
	return b.String()
}

func (r *Renderer) renderHistory(entries []HistoryEntry, selected int) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Historial de errores"))
	b.WriteString("\n\n")
	if len(entries) == 0 {
		b.WriteString(r.styles.Dim.Render("Sin errores registrados"))
	}
	for i, e := range entries {
		line := e.At.Format("15:04:05") + "  " + r.styles.Filter.Render(e.Operation) + "  " + e.Message
		if i == selected {
			line = r.styles.HighlightBg.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render("j/k mover • d descartar • C limpiar todo • esc cerrar"))
	return b.String()
}

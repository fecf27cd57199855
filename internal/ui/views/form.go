package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FormField is one rendered draft entry
type FormField struct {
	Label   string
	Value   string // text input view when focused, raw value otherwise
	Error   string
	Focused bool
	Choice  bool // value is cycled with ←/→
}

// FormView is the create/edit screen of a section
type FormView struct {
	Title      string
	Fields     []FormField
	Error      string // last failed submission
	Submitting bool
}

// FormRenderer draws drafts
type FormRenderer struct {
	styles *Styles
}

// NewFormRenderer creates a new form renderer
func NewFormRenderer(styles *Styles) *FormRenderer {
	return &FormRenderer{styles: styles}
}

// Render draws a form
func (fr *FormRenderer) Render(form FormView, width int) string {
	var b strings.Builder
	b.WriteString(fr.styles.Title.Render(form.Title))
	b.WriteString("\n\n")

	if form.Error != "" {
		b.WriteString(fr.styles.StatusError.Render("✗ " + form.Error))
		b.WriteString("  ")
		b.WriteString(fr.styles.Dim.Render("(ctrl+x para descartar)"))
		b.WriteString("\n\n")
	}

	labelWidth := 0
	for _, f := range form.Fields {
		if w := lipgloss.Width(f.Label); w > labelWidth {
			labelWidth = w
		}
	}

	for _, f := range form.Fields {
		marker := "  "
		if f.Focused {
			marker = fr.styles.Highlight.Render("▸ ")
		}
		label := fr.styles.Label.Width(labelWidth).Render(f.Label)
		value := f.Value
		if f.Choice {
			value = fmt.Sprintf("‹ %s ›", value)
		}
		line := fmt.Sprintf("%s%s  %s", marker, label, value)
		if f.Focused {
			line = fr.styles.HighlightBg.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if f.Error != "" {
			b.WriteString(strings.Repeat(" ", labelWidth+4))
			b.WriteString(fr.styles.FieldError.Render(f.Error))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if form.Submitting {
		b.WriteString(fr.styles.StatusLoading.Render("Guardando..."))
	} else {
		b.WriteString(fr.styles.Dim.Render("tab/↓ siguiente • shift+tab/↑ anterior • ←/→ cambiar opción • enter guardar • esc cancelar"))
	}

	style := fr.styles.FormBox
	if width > 4 {
		style = style.Width(width - 4)
	}
	return style.Render(b.String())
}

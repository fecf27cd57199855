package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Tabs      []string
	ActiveTab int

	Headers       []string
	Rows          [][]string
	SelectedIndex int
	Page          int
	TotalPages    int
	Count         int
	Loading       bool
	Loaded        bool
	LoadError     string

	SearchQuery string
	FilterLabel string

	AlertMessage string
	AlertError   bool

	InputMode    string // name of the active input mode
	Prompt       string
	TextInput    string
	FilterFields []string
	FilterField  int
	DeleteTarget string

	Form          *FormView
	Detail        *DetailView
	ShowHistory   bool
	History       []HistoryEntry
	HistoryCursor int

	StatusMessage string
	HelpModel     help.Model
	Keys          help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	tableRender *TableRenderer
	formRender  *FormRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		tableRender: NewTableRenderer(styles),
		formRender:  NewFormRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n\n")

	// Alert
	if state.AlertMessage != "" {
		if state.AlertError {
			content.WriteString(r.styles.StatusError.Render("✗ " + state.AlertMessage))
		} else {
			content.WriteString(r.styles.StatusSuccess.Render("✓ " + state.AlertMessage))
		}
		content.WriteString("\n")
	}

	// Prompt line
	prompt := r.renderPrompt(state)
	if prompt != "" {
		content.WriteString(prompt)
		content.WriteString("\n")
	}
	if state.AlertMessage != "" || prompt != "" {
		content.WriteString("\n")
	}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	availableWidth := termWidth - 4 // Account for main container padding

	// Main content
	var mainContent string
	switch {
	case state.Form != nil:
		mainContent = r.formRender.Render(*state.Form, availableWidth)
	case state.ShowHistory:
		mainContent = r.popupRender.RenderPopup(r.renderHistory(state.History, state.HistoryCursor), availableWidth, 0, r.styles.HistoryBox)
	case state.Detail != nil:
		mainContent = r.popupRender.RenderPopup(r.renderDetail(*state.Detail), availableWidth, 0, r.styles.DetailBox)
	case state.LoadError != "":
		mainContent = r.styles.StatusError.Render(state.LoadError) + "\n" +
			r.styles.Dim.Render("Pulsa R para reintentar.")
	case !state.Loaded:
		mainContent = r.styles.Dim.Render("Cargando...")
	case len(state.Rows) == 0:
		mainContent = r.styles.Dim.Render("No hay registros.")
	default:
		mainContent = r.tableRender.Render(state.Headers, state.Rows, state.SelectedIndex, 0)
	}
	content.WriteString(mainContent)

	// Footer pinned to the bottom
	footer := r.renderFooter(state)
	currentLines := strings.Count(content.String(), "\n") + 1
	// Account for container padding (1 top, 1 bottom from Padding(1, 2))
	availableLines := state.Height - 2
	if availableLines <= 0 {
		availableLines = 22 // Default terminal height minus padding
	}
	footerLines := strings.Count(footer, "\n") + 1
	if paddingNeeded := availableLines - currentLines - footerLines; paddingNeeded > 0 {
		content.WriteString(strings.Repeat("\n", paddingNeeded))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

// renderTitleLine draws the logo and tabs with right-aligned indicators
func (r *Renderer) renderTitleLine(state ViewState) string {
	left := r.styles.Title.Render("rentaldash") + "  " + r.renderTabs(state)

	indicators := []string{}
	if state.Loading {
		indicators = append(indicators, r.styles.StatusLoading.Render("⟳ Cargando"))
	}
	if state.SearchQuery != "" {
		indicators = append(indicators, r.styles.Search.Render(fmt.Sprintf("[Buscar: %s]", state.SearchQuery)))
	}
	if state.FilterLabel != "" {
		indicators = append(indicators, r.styles.Filter.Render(fmt.Sprintf("[Filtro: %s]", state.FilterLabel)))
	}
	if n := len(state.History); n > 0 {
		indicators = append(indicators, r.styles.StatusError.Render(fmt.Sprintf("⚠ %d", n)))
	}
	if len(indicators) == 0 {
		return left
	}

	right := strings.Join(indicators, "  ")
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	paddingWidth := termWidth - 4 - lipgloss.Width(left) - lipgloss.Width(right)
	if paddingWidth > 0 {
		return left + strings.Repeat(" ", paddingWidth) + right
	}
	// If not enough space, just show with minimal spacing
	return left + "  " + right
}

func (r *Renderer) renderTabs(state ViewState) string {
	tabs := make([]string, len(state.Tabs))
	for i, t := range state.Tabs {
		if i == state.ActiveTab {
			tabs[i] = r.styles.ActiveTab.Render(t)
		} else {
			tabs[i] = r.styles.Tab.Render(t)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (r *Renderer) renderPrompt(state ViewState) string {
	switch state.InputMode {
	case "delete-confirm":
		return r.styles.Confirm.Render(fmt.Sprintf("¿Eliminar %s? (y/n): ", state.DeleteTarget))
	case "filter":
		field := ""
		if state.FilterField >= 0 && state.FilterField < len(state.FilterFields) {
			field = state.FilterFields[state.FilterField]
		}
		return r.styles.Filter.Render(state.Prompt+"["+field+"]: ") + state.TextInput +
			"  " + r.styles.Dim.Render("tab cambia el campo")
	case "search", "return-date":
		return state.Prompt + state.TextInput
	}
	return ""
}

func (r *Renderer) renderFooter(state ViewState) string {
	var parts []string
	if state.Form == nil && state.Detail == nil && !state.ShowHistory {
		parts = append(parts, r.styles.Status.Render(
			fmt.Sprintf("Página %d de %d • %d registros", max(state.Page, 1), max(state.TotalPages, 1), state.Count)))
	}
	if state.StatusMessage != "" {
		parts = append(parts, r.styles.Dim.Render(state.StatusMessage))
	}
	line := strings.Join(parts, "  ")
	if state.Keys == nil {
		return line + "\n" + r.styles.Help.Render("Pulsa ? para ayuda")
	}
	return line + "\n" + state.HelpModel.View(state.Keys)
}

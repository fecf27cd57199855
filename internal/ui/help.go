package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"rentaldash/internal/api"
	"rentaldash/internal/reports"
	"rentaldash/internal/ui/views"
)

// HelpRenderer handles help and report content rendering
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
	note    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		note:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
	}
}

type helpLine struct{ keys, desc string }

var helpSections = []struct {
	title string
	lines []helpLine
}{
	{"Navegación", []helpLine{
		{"↑/↓, j/k", "Mover la selección"},
		{"←/→, h/l, [/]", "Página anterior/siguiente"},
		{"PgUp/PgDn", "Página anterior/siguiente"},
		{"g/G", "Primera/última página"},
		{"tab, 1-3", "Cambiar de sección"},
		{"enter", "Ver detalle"},
	}},
	{"Búsqueda y filtros", []helpLine{
		{"/", "Buscar en la lista cargada"},
		{"F", "Filtrar en el servidor"},
		{"tab", "Cambiar el campo del filtro"},
		{"x", "Quitar el filtro"},
		{"R", "Reintentar la última carga"},
	}},
	{"Registros", []helpLine{
		{"c", "Nuevo registro"},
		{"e", "Editar el registro seleccionado"},
		{"d", "Eliminar el registro seleccionado"},
		{"ctrl+s", "Guardar el formulario"},
		{"ctrl+x", "Descartar el error del formulario"},
	}},
	{"Alquileres", []helpLine{
		{"a", "Activar un alquiler pendiente"},
		{"o", "Completar un alquiler activo"},
		{"X", "Cancelar un alquiler pendiente"},
	}},
	{"Otros", []helpLine{
		{"r", "Reportes de la sección"},
		{"E", "Historial de errores"},
		{"-", "Descartar el último error"},
		{"C", "Vaciar el historial"},
		{"?", "Esta ayuda"},
		{"q", "Salir"},
	}},
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	var help strings.Builder

	help.WriteString(r.title.Render("Ayuda de rentaldash"))
	help.WriteString("\n")

	for _, s := range helpSections {
		help.WriteString(r.section.Render(s.title))
		help.WriteString("\n")
		for _, l := range s.lines {
			help.WriteString(fmt.Sprintf("  %s %s\n", r.key.Width(16).Render(l.keys), r.desc.Render(l.desc)))
		}
	}
	help.WriteString("\n")
	help.WriteString(r.note.Render("  Fechas en formato AAAA-MM-DD. La búsqueda y el filtro no se combinan."))
	return help.String()
}

// RenderReports lays out report results one after another
func (r *HelpRenderer) RenderReports(title string, results []reports.Result) string {
	var out strings.Builder
	out.WriteString(r.title.Render(title))
	out.WriteString("\n")
	for _, res := range results {
		heading := res.Table.Title
		if heading == "" {
			heading = res.Report.Title
		}
		out.WriteString(r.section.Render(heading))
		out.WriteString("\n")
		switch {
		case res.Err != nil:
			out.WriteString(r.desc.Render("  Error: " + api.Message(res.Err)))
		case res.Report.NeedsClient && res.Table.Title == "":
			out.WriteString(r.note.Render("  Selecciona un registro con cliente"))
		case len(res.Table.Rows) == 0:
			out.WriteString(r.note.Render("  Sin datos"))
		default:
			out.WriteString(views.RenderPlain(res.Table.Headers, res.Table.Rows))
		}
		out.WriteString("\n")
	}
	return out.String()
}

// PagerOps hands the terminal to ov for long read-only content
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{program: program}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// ShowInPager shows content using ov pager
func (p *PagerOps) ShowInPager(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

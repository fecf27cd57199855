package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap lists the bindings shown in the footer. Dispatch itself lives in the input modes.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Page     key.Binding
	Sections key.Binding
	Detail   key.Binding
	Search   key.Binding
	Filter   key.Binding
	Create   key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Activate key.Binding
	Complete key.Binding
	Cancel   key.Binding
	Reports  key.Binding
	History  key.Binding
	Retry    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "subir")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "bajar")),
		Page:     key.NewBinding(key.WithKeys("left", "right", "pgup", "pgdown"), key.WithHelp("←/→", "página")),
		Sections: key.NewBinding(key.WithKeys("tab", "1", "2", "3"), key.WithHelp("tab/1-3", "sección")),
		Detail:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detalle")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "buscar")),
		Filter:   key.NewBinding(key.WithKeys("F", "x"), key.WithHelp("F/x", "filtrar/quitar")),
		Create:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "nuevo")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "editar")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "eliminar")),
		Activate: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "activar")),
		Complete: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "completar")),
		Cancel:   key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "cancelar")),
		Reports:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reportes")),
		History:  key.NewBinding(key.WithKeys("E", "-", "C"), key.WithHelp("E", "errores")),
		Retry:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reintentar")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "ayuda")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "salir")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sections, k.Search, k.Filter, k.Create, k.Edit, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Page, k.Sections, k.Detail},
		{k.Search, k.Filter, k.Retry},
		{k.Create, k.Edit, k.Delete},
		{k.Activate, k.Complete, k.Cancel},
		{k.Reports, k.History, k.Help, k.Quit},
	}
}

// rentalsOnly enables the lifecycle bindings when the rentals section is shown
func (k *keyMap) rentalsOnly(on bool) {
	k.Activate.SetEnabled(on)
	k.Complete.SetEnabled(on)
	k.Cancel.SetEnabled(on)
}

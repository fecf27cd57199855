package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rentaldash/internal/ui/input/types"
)

// FilterMode edits the server filter value; tab cycles the field
type FilterMode struct {
	TextInputMode
}

func NewFilterMode(ti *textinput.Model) *FilterMode {
	return &FilterMode{
		TextInputMode: NewTextInputMode(types.ModeFilter, "filter", "Filtrar por ", ti),
	}
}

func (m *FilterMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "tab":
		return []types.Action{types.CycleFilterFieldAction{Delta: 1}}, true
	case "shift+tab":
		return []types.Action{types.CycleFilterFieldAction{Delta: -1}}, true
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}

package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"rentaldash/internal/ui/input/types"
)

// DetailMode shows every field of the selected record
type DetailMode struct{}

func NewDetailMode() *DetailMode {
	return &DetailMode{}
}

func (m *DetailMode) Name() string {
	return "detail"
}

func (m *DetailMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *DetailMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *DetailMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "enter", "q":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "e":
		return []types.Action{
			types.ChangeModeAction{Mode: types.ModeForm},
			types.OpenFormAction{Edit: true},
		}, true
	case "r":
		return []types.Action{types.ShowReportsAction{}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	}
	return nil, true
}

package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"rentaldash/internal/ui/input/types"
)

// HistoryMode browses the error history
type HistoryMode struct{}

func NewHistoryMode() *HistoryMode {
	return &HistoryMode{}
}

func (m *HistoryMode) Name() string {
	return "history"
}

func (m *HistoryMode) Enter(ctx types.Context) []types.Action {
	return []types.Action{types.NavigateAction{Direction: "home"}}
}

func (m *HistoryMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *HistoryMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "E", "q":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "j", "down":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "k", "up":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "d", "x", "-":
		if ctx.HistoryLen() == 0 {
			return nil, true
		}
		return []types.Action{types.DismissErrorAction{Selected: true}}, true
	case "C":
		return []types.Action{types.ClearHistoryAction{}}, true
	}
	return nil, true
}

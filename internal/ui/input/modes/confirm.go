package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"rentaldash/internal/ui/input/types"
)

type ConfirmMode struct {
	targetID int64
}

func NewConfirmMode() *ConfirmMode {
	return &ConfirmMode{}
}

func (m *ConfirmMode) Name() string {
	return "delete-confirm"
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	// Store the record id when entering the mode
	m.targetID = ctx.SelectedID()
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "n", "N":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "y", "Y":
		return []types.Action{
			types.DeleteAction{ID: m.targetID},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}

	return nil, true
}

package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"rentaldash/internal/domain"
	"rentaldash/internal/ui/input/types"
)

type NormalMode struct {
	today func() domain.Date
}

func NewNormalMode() *NormalMode {
	return &NormalMode{today: domain.Today}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil // No special actions on enter
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyLeft, tea.KeyPgUp:
		return []types.Action{types.PageAction{Delta: -1}}, true

	case tea.KeyRight, tea.KeyPgDown:
		return []types.Action{types.PageAction{Delta: 1}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyTab:
		return []types.Action{types.SwitchSectionAction{Delta: 1}}, true

	case tea.KeyShiftTab:
		return []types.Action{types.SwitchSectionAction{Delta: -1}}, true

	case tea.KeyEnter:
		if ctx.HasSelection() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeDetail}}, true
		}
		return nil, false
	}

	// Handle string keys
	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case "[", "h":
		return []types.Action{types.PageAction{Delta: -1}}, true

	case "]", "l":
		return []types.Action{types.PageAction{Delta: 1}}, true

	case "1", "2", "3":
		return []types.Action{types.SwitchSectionAction{Index: int(msg.String()[0] - '1')}}, true

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchQuery()}}, true

	case "F":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter, Data: ctx.FilterValue()}}, true

	case "x":
		if ctx.FilterActive() {
			return []types.Action{types.ClearFilterAction{}}, true
		}

	case "c":
		return []types.Action{
			types.ChangeModeAction{Mode: types.ModeForm},
			types.OpenFormAction{},
		}, true

	case "e":
		if ctx.HasSelection() {
			return []types.Action{
				types.ChangeModeAction{Mode: types.ModeForm},
				types.OpenFormAction{Edit: true},
			}, true
		}

	case "d":
		if ctx.HasSelection() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeDeleteConfirm}}, true
		}

	case "a":
		if status, ok := ctx.SelectedStatus(); ok && domain.CanActivate(status) == nil {
			return []types.Action{types.TransitionAction{Transition: types.TransitionActivate, ID: ctx.SelectedID()}}, true
		}

	case "o":
		if status, ok := ctx.SelectedStatus(); ok && domain.CanComplete(status) == nil {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeReturnDate, Data: m.today().String()}}, true
		}

	case "X":
		if status, ok := ctx.SelectedStatus(); ok && domain.CanCancel(status) == nil {
			return []types.Action{types.TransitionAction{Transition: types.TransitionCancel, ID: ctx.SelectedID()}}, true
		}

	case "E":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeHistory}}, true

	case "-":
		if ctx.HistoryLen() > 0 {
			return []types.Action{types.DismissErrorAction{}}, true
		}

	case "C":
		if ctx.HistoryLen() > 0 {
			return []types.Action{types.ClearHistoryAction{}}, true
		}

	case "R":
		return []types.Action{types.RetryAction{}}, true

	case "r":
		return []types.Action{types.ShowReportsAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{}}, true
	}

	return nil, false
}

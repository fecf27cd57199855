package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rentaldash/internal/ui/input/types"
)

// FormMode edits a create/edit draft one field at a time. The shared text
// input holds the focused field; choice fields are cycled instead of typed.
type FormMode struct {
	textInput *textinput.Model
}

func NewFormMode(ti *textinput.Model) *FormMode {
	return &FormMode{textInput: ti}
}

func (m *FormMode) Name() string {
	return "form"
}

func (m *FormMode) Enter(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Prompt = ""
	}
	return nil
}

func (m *FormMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
		m.textInput.Reset()
	}
	return nil
}

func (m *FormMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{
			types.FormCancelAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "enter", "ctrl+s":
		return []types.Action{types.FormSubmitAction{}}, true
	case "tab", "down":
		return []types.Action{types.FormFocusAction{Delta: 1}}, true
	case "shift+tab", "up":
		return []types.Action{types.FormFocusAction{Delta: -1}}, true
	case "ctrl+x":
		return []types.Action{types.DismissFormErrorAction{}}, true
	}

	// The draft is frozen until the save answers
	if ctx.FormSubmitting() {
		return nil, true
	}

	if ctx.FormChoiceFocused() {
		switch msg.String() {
		case "left", "h":
			return []types.Action{types.FormCycleChoiceAction{Delta: -1}}, true
		case "right", "l", " ":
			return []types.Action{types.FormCycleChoiceAction{Delta: 1}}, true
		}
		// Choice fields are not typed into
		return nil, true
	}

	return nil, false
}

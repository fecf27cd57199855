package viewmodels

import (
	"github.com/charmbracelet/bubbles/textinput"
)

// InputTransformer turns the input handler's mode into prompt text for the view
type InputTransformer struct {
	mode      string
	prompt    string
	textInput textinput.Model
}

// NewInputTransformer creates a new input transformer
func NewInputTransformer(textInput textinput.Model) *InputTransformer {
	return &InputTransformer{
		mode:      "normal",
		textInput: textInput,
	}
}

// SetMode sets the current input mode name and its prompt
func (it *InputTransformer) SetMode(mode, prompt string) {
	it.mode = mode
	it.prompt = prompt
}

// GetInputText returns the current text input string for the view
func (it *InputTransformer) GetInputText() string {
	switch it.mode {
	case "search", "filter", "return-date", "form":
		return it.textInput.View()
	default:
		return ""
	}
}

// GetInputModeString returns the mode name, empty in normal mode
func (it *InputTransformer) GetInputModeString() string {
	if it.mode == "normal" {
		return ""
	}
	return it.mode
}

// Prompt returns the label of the current text mode
func (it *InputTransformer) Prompt() string {
	return it.prompt
}

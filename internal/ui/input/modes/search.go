package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"rentaldash/internal/ui/input/types"
)

// SearchMode edits the local search query. Every keystroke is applied.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Buscar: ", ti),
	}
}

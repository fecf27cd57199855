package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rentaldash/internal/ui/input/types"
)

// ReturnDateMode asks for the return date before completing a rental
type ReturnDateMode struct {
	TextInputMode
	rentalID int64
}

func NewReturnDateMode(ti *textinput.Model) *ReturnDateMode {
	return &ReturnDateMode{
		TextInputMode: NewTextInputMode(types.ModeReturnDate, "return-date", "Fecha de devolución (AAAA-MM-DD): ", ti),
	}
}

// Enter remembers the rental so a refresh underneath does not change the target
func (m *ReturnDateMode) Enter(ctx types.Context) []types.Action {
	m.rentalID = ctx.SelectedID()
	return m.TextInputMode.Enter(ctx)
}

func (m *ReturnDateMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.String() == "enter" {
		text := ""
		if m.textInput != nil {
			text = m.textInput.Value()
		}
		return []types.Action{
			types.CompleteRentalAction{ID: m.rentalID, Date: text},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}

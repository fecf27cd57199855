package views

import (
	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopup centers a styled box in an area of width x height. A height of
// 0 centers horizontally only.
func (pr *PopupRenderer) RenderPopup(popupContent string, width, height int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)
	if width <= 0 {
		return styledPopup
	}
	// keep a small margin
	if lipgloss.Width(styledPopup) > width-2 {
		styledPopup = popupStyle.Width(width - 2 - popupStyle.GetHorizontalFrameSize()).Render(popupContent)
	}
	if height <= 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, styledPopup)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styledPopup)
}

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rentaldash/internal/domain"
)

func TestCursorIsPerSection(t *testing.T) {
	s := NewAppState(3)

	s.MoveCursor(5, 8)
	assert.Equal(t, 5, s.Cursor())

	s.SwitchSection(1)
	assert.Equal(t, 0, s.Cursor())
	s.MoveCursor(-1, 8)
	assert.Equal(t, 0, s.Cursor())

	s.SwitchSection(-3)
	assert.Equal(t, 0, s.ActiveSection)
	assert.Equal(t, 5, s.Cursor())

	s.ClampCursor(2)
	assert.Equal(t, 1, s.Cursor())
	s.ClampCursor(0)
	assert.Equal(t, 0, s.Cursor())
}

func TestSwitchSectionWraps(t *testing.T) {
	s := NewAppState(3)
	s.SwitchSection(3)
	assert.Equal(t, 0, s.ActiveSection)
	s.SwitchSection(-1)
	assert.Equal(t, 2, s.ActiveSection)
}

func TestAlertAndForm(t *testing.T) {
	s := NewAppState(1)

	s.ShowAlert(domain.AlertSuccess, "Cliente creado con éxito")
	s.ShowAlert(domain.AlertError, "Error al crear el cliente: x")
	assert.Equal(t, &Alert{Level: domain.AlertError, Message: "Error al crear el cliente: x"}, s.Alert)
	s.ClearAlert()
	assert.Nil(t, s.Alert)

	s.OpenForm(7)
	s.FormFocus = 3
	s.Submitting = true
	assert.True(t, s.FormOpen)
	s.CloseForm()
	assert.Equal(t, AppState{Cursors: []int{0}}, *s)
}

func TestClampSectionLeavesOthersAlone(t *testing.T) {
	s := NewAppState(3)
	s.Cursors = []int{4, 7, 2}

	s.ClampSection(1, 3)
	assert.Equal(t, []int{4, 2, 2}, s.Cursors)

	s.ClampSection(5, 1)
	assert.Equal(t, []int{4, 2, 2}, s.Cursors)
}

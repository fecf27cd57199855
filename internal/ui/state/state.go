package state

import (
	"rentaldash/internal/domain"
)

// Alert is the transient notification shown under the title
type Alert struct {
	Level   domain.AlertLevel
	Message string
}

// AppState contains all the application state
type AppState struct {
	// Section data
	ActiveSection int   // index of the shown section
	Cursors       []int // selected row per section, relative to the page

	// UI state
	Width         int
	Height        int
	Alert         *Alert
	StatusMessage string // hint shown in the footer until the next key
	InPager       bool   // an external pager owns the terminal

	// Form state
	FormOpen   bool
	FormEditID int64 // 0 when creating
	FormFocus  int   // index of the focused field
	Submitting bool  // a form request is in flight

	// Filter editing
	FilterField int // index into the active section's filter fields

	// Error history
	HistoryCursor int
}

// NewAppState creates a new application state
func NewAppState(sections int) *AppState {
	return &AppState{
		Cursors: make([]int, sections),
	}
}

// Cursor returns the selected row of the active section
func (s *AppState) Cursor() int {
	if s.ActiveSection < 0 || s.ActiveSection >= len(s.Cursors) {
		return 0
	}
	return s.Cursors[s.ActiveSection]
}

// SetCursor moves the selection of the active section
func (s *AppState) SetCursor(i int) {
	if s.ActiveSection < 0 || s.ActiveSection >= len(s.Cursors) {
		return
	}
	s.Cursors[s.ActiveSection] = i
}

// MoveCursor shifts the selection by delta within [0, rows)
func (s *AppState) MoveCursor(delta, rows int) {
	s.SetCursor(clamp(s.Cursor()+delta, rows))
}

// ClampCursor keeps the selection inside a page of rows
func (s *AppState) ClampCursor(rows int) {
	s.SetCursor(clamp(s.Cursor(), rows))
}

// ClampSection keeps the selection of section i inside a page of rows
func (s *AppState) ClampSection(i, rows int) {
	if i < 0 || i >= len(s.Cursors) {
		return
	}
	s.Cursors[i] = clamp(s.Cursors[i], rows)
}

// SwitchSection activates section i, wrapping around
func (s *AppState) SwitchSection(i int) {
	n := len(s.Cursors)
	if n == 0 {
		return
	}
	s.ActiveSection = ((i % n) + n) % n
}

// ShowAlert replaces the current alert
func (s *AppState) ShowAlert(level domain.AlertLevel, msg string) {
	s.Alert = &Alert{Level: level, Message: msg}
}

// ClearAlert hides whichever alert is shown
func (s *AppState) ClearAlert() {
	s.Alert = nil
}

// OpenForm records a draft session; editID is 0 for create
func (s *AppState) OpenForm(editID int64) {
	s.FormOpen = true
	s.FormEditID = editID
	s.FormFocus = 0
	s.Submitting = false
}

// CloseForm forgets the draft session
func (s *AppState) CloseForm() {
	s.FormOpen = false
	s.FormEditID = 0
	s.FormFocus = 0
	s.Submitting = false
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

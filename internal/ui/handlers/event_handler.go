package handlers

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rentaldash/internal/eventbus"
	"rentaldash/internal/ui/state"
)

// ClearAlertMsg hides the alert when its timer fires
type ClearAlertMsg struct{}

// RowCounter reports the section index and current page length of a collection
type RowCounter func(entity string) (index, rows int, ok bool)

// EventHandler handles domain events and updates state
type EventHandler struct {
	state        *state.AppState
	rows         RowCounter
	successAlert time.Duration
	errorAlert   time.Duration
	log          *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState, rows RowCounter, successAlert, errorAlert time.Duration, log *zap.Logger) *EventHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventHandler{
		state:        appState,
		rows:         rows,
		successAlert: successAlert,
		errorAlert:   errorAlert,
		log:          log.Named("events"),
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.AlertEvent:
		h.state.ShowAlert(e.Level, e.Message)
		d := h.successAlert
		if e.Level == eventbus.AlertError {
			d = h.errorAlert
		}
		// A later alert may be cleared by an earlier timer; alerts are short-lived anyway
		return tea.Tick(d, func(time.Time) tea.Msg { return ClearAlertMsg{} })

	case eventbus.EntityChangedEvent:
		if h.rows == nil {
			return nil
		}
		if i, n, ok := h.rows(e.Entity); ok {
			h.state.ClampSection(i, n)
		}

	case eventbus.ErrorEvent:
		h.log.Warn("background operation failed", zap.String("op", e.Operation), zap.String("message", e.Message), zap.Error(e.Err))
	}
	return nil
}

package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

type PageAction struct {
	Delta int
}

func (a PageAction) Type() string { return "page" }

type SwitchSectionAction struct {
	Delta int
	Index int // used when Delta is 0
}

func (a SwitchSectionAction) Type() string { return "switch_section" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode; a string pre-fills text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode
}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Filter actions
type CycleFilterFieldAction struct {
	Delta int
}

func (a CycleFilterFieldAction) Type() string { return "cycle_filter_field" }

type ClearFilterAction struct{}

func (a ClearFilterAction) Type() string { return "clear_filter" }

type RetryAction struct{}

func (a RetryAction) Type() string { return "retry" }

// Form actions
type OpenFormAction struct {
	Edit bool
}

func (a OpenFormAction) Type() string { return "open_form" }

type FormFocusAction struct {
	Delta int
}

func (a FormFocusAction) Type() string { return "form_focus" }

type FormCycleChoiceAction struct {
	Delta int
}

func (a FormCycleChoiceAction) Type() string { return "form_cycle_choice" }

type FormSubmitAction struct{}

func (a FormSubmitAction) Type() string { return "form_submit" }

type FormCancelAction struct{}

func (a FormCancelAction) Type() string { return "form_cancel" }

type DismissFormErrorAction struct{}

func (a DismissFormErrorAction) Type() string { return "dismiss_form_error" }

// Record actions
type DeleteAction struct {
	ID int64
}

func (a DeleteAction) Type() string { return "delete" }

// Transition names a rental state change offered from the list
type Transition string

const (
	TransitionActivate Transition = "activate"
	TransitionCancel   Transition = "cancel"
)

type TransitionAction struct {
	Transition Transition
	ID         int64
}

func (a TransitionAction) Type() string { return "transition" }

type CompleteRentalAction struct {
	ID   int64
	Date string
}

func (a CompleteRentalAction) Type() string { return "complete_rental" }

// Error history actions
type DismissErrorAction struct {
	Selected bool // false dismisses the newest entry
}

func (a DismissErrorAction) Type() string { return "dismiss_error" }

type ClearHistoryAction struct{}

func (a ClearHistoryAction) Type() string { return "clear_history" }

// Pager actions
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type ShowReportsAction struct{}

func (a ShowReportsAction) Type() string { return "show_reports" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

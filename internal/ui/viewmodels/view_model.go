package viewmodels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"rentaldash/internal/domain"
	"rentaldash/internal/forms"
	"rentaldash/internal/logic"
	"rentaldash/internal/ui/sections"
	"rentaldash/internal/ui/state"
	"rentaldash/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state            *state.AppState
	sections         []sections.Section
	dispatcher       *logic.Dispatcher
	help             help.Model
	keys             help.KeyMap
	form             *forms.Form
	inputTransformer *InputTransformer
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, list []sections.Section, dispatcher *logic.Dispatcher, textInput textinput.Model) *ViewModel {
	return &ViewModel{
		state:            appState,
		sections:         list,
		dispatcher:       dispatcher,
		inputTransformer: NewInputTransformer(textInput),
	}
}

// SetHelp sets the help model and the bindings it shows
func (vm *ViewModel) SetHelp(helpModel help.Model, keys help.KeyMap) {
	vm.help = helpModel
	vm.keys = keys
}

// SetForm sets the open draft, nil when none
func (vm *ViewModel) SetForm(f *forms.Form) {
	vm.form = f
}

// SetInputMode sets the current input mode
func (vm *ViewModel) SetInputMode(mode, prompt string) {
	vm.inputTransformer.SetMode(mode, prompt)
}

// UpdateTextInput updates the text input model
func (vm *ViewModel) UpdateTextInput(textInput textinput.Model) {
	vm.inputTransformer.textInput = textInput
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	vs := views.ViewState{
		Width:         vm.state.Width,
		Height:        vm.state.Height,
		ActiveTab:     vm.state.ActiveSection,
		InputMode:     vm.inputTransformer.GetInputModeString(),
		Prompt:        vm.inputTransformer.Prompt(),
		TextInput:     vm.inputTransformer.GetInputText(),
		FilterField:   vm.state.FilterField,
		StatusMessage: vm.state.StatusMessage,
		HelpModel:     vm.help,
		Keys:          vm.keys,
		HistoryCursor: vm.state.HistoryCursor,
	}
	for _, s := range vm.sections {
		vs.Tabs = append(vs.Tabs, s.Title())
	}
	if a := vm.state.Alert; a != nil {
		vs.AlertMessage = a.Message
		vs.AlertError = a.Level == domain.AlertError
	}
	for _, e := range vm.dispatcher.History().Entries() {
		vs.History = append(vs.History, views.HistoryEntry{Operation: string(e.Operation), Message: e.Message, At: e.At})
	}
	vs.ShowHistory = vs.InputMode == "history"

	sec := vm.active()
	if sec == nil {
		return vs
	}

	// Rows clamps the page, read it before the pager
	vs.Headers = sec.Headers()
	vs.Rows = sec.Rows()
	vs.SelectedIndex = vm.state.Cursor()
	vs.Page = sec.Pager().CurrentPage()
	vs.TotalPages = sec.Pager().TotalPages()
	vs.Count = sec.Count()
	vs.Loading = sec.Loading()
	vs.Loaded = sec.Loaded()
	vs.LoadError = sec.ErrMessage()
	if q := sec.Query(); strings.TrimSpace(q) != "" {
		vs.SearchQuery = q
	}
	vs.FilterLabel = sec.Filter().Describe()
	for _, f := range sec.Filter().Fields() {
		vs.FilterFields = append(vs.FilterFields, f.Label)
	}

	if id, ok := sec.IDAt(vm.state.Cursor()); ok {
		vs.DeleteTarget = fmt.Sprintf("%s #%d", sec.Noun().Singular, id)
		if vs.InputMode == "detail" {
			d := &views.DetailView{Title: fmt.Sprintf("%s #%d", sec.Title(), id)}
			for _, line := range sec.Details(vm.state.Cursor()) {
				d.Lines = append(d.Lines, views.DetailLine{Label: line.Label, Value: line.Value})
			}
			vs.Detail = d
		}
	}

	if vm.form != nil && vm.state.FormOpen {
		vs.Form = vm.buildForm(sec, vs.TextInput)
	}
	return vs
}

func (vm *ViewModel) buildForm(sec sections.Section, input string) *views.FormView {
	title := "Nuevo " + sec.Noun().Singular
	if vm.state.FormEditID != 0 {
		title = fmt.Sprintf("Editar %s #%d", sec.Noun().Singular, vm.state.FormEditID)
	}
	fv := &views.FormView{Title: title, Submitting: vm.state.Submitting}
	if cur, ok := vm.dispatcher.Current(); ok {
		fv.Error = cur.Message
	}

	for i, field := range vm.form.Fields() {
		focused := i == vm.state.FormFocus
		choice := field.Kind == forms.KindChoice || field.Kind == forms.KindBool
		value := vm.form.Value(field.Name)
		switch {
		case choice:
			value = ChoiceLabel(vm.form, field, value)
		case focused:
			value = input
		}
		fv.Fields = append(fv.Fields, views.FormField{
			Label:   field.Label,
			Value:   value,
			Error:   vm.form.Error(field.Name),
			Focused: focused,
			Choice:  choice,
		})
	}
	return fv
}

func (vm *ViewModel) active() sections.Section {
	i := vm.state.ActiveSection
	if i < 0 || i >= len(vm.sections) {
		return nil
	}
	return vm.sections[i]
}

// ChoiceLabel renders the current value of a choice or bool field
func ChoiceLabel(f *forms.Form, field forms.Field, value string) string {
	if field.Kind == forms.KindBool {
		if value == "true" {
			return "Sí"
		}
		return "No"
	}
	for _, c := range f.Choices(field.Name) {
		if c.Value == value {
			return c.Label
		}
	}
	if value == "" {
		return "(sin seleccionar)"
	}
	return value
}

package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rentaldash/internal/api"
	"rentaldash/internal/config"
	"rentaldash/internal/domain"
	"rentaldash/internal/eventbus"
	"rentaldash/internal/forms"
	"rentaldash/internal/logic"
	"rentaldash/internal/reports"
	"rentaldash/internal/ui/commands"
	"rentaldash/internal/ui/handlers"
	"rentaldash/internal/ui/input"
	inputtypes "rentaldash/internal/ui/input/types"
	"rentaldash/internal/ui/sections"
	"rentaldash/internal/ui/state"
	"rentaldash/internal/ui/viewmodels"
	"rentaldash/internal/ui/views"
)

// Section order on screen
const (
	clientsSection = iota
	vehiclesSection
	rentalsSection
)

// Model represents the application state
type Model struct {
	config *config.Config
	log    *zap.Logger
	state  *state.AppState // centralized state

	help help.Model
	keys keyMap

	sections   []sections.Section
	rentals    *sections.Rentals
	dispatcher *logic.Dispatcher
	form       *forms.Form // open draft, nil when no form is shown

	// Handlers
	renderer     *views.Renderer        // view renderer
	eventHandler *handlers.EventHandler // event processing handler
	viewModel    *viewmodels.ViewModel  // view model for rendering
	cmdExecutor  *commands.Executor     // command executor
	inputHandler *input.Handler         // input handling
	helpRenderer *HelpRenderer
	pager        *PagerOps

	ctx    context.Context
	cancel context.CancelFunc

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model over the API client. Store notifications
// go to bus; forward its events to the program as EventMsg.
func NewModel(cfg *config.Config, bus eventbus.EventBus, client *api.Client, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	pageSize := cfg.UI.PageSize
	list := []sections.Section{
		sections.NewClients(client, bus, log, pageSize),
		sections.NewVehicles(client, bus, log, pageSize),
	}
	rentals := sections.NewRentals(client, bus, log, pageSize)
	list = append(list, rentals)
	return newModel(cfg, list, rentals, client, log)
}

func newModel(cfg *config.Config, list []sections.Section, rentals *sections.Rentals, src reports.Source, log *zap.Logger) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	appState := state.NewAppState(len(list))
	dispatcher := logic.NewDispatcher(logic.NewErrorHistory(cfg.UI.ErrorHistorySize))

	m := &Model{
		config:       cfg,
		log:          log.Named("ui"),
		state:        appState,
		help:         help.New(),
		keys:         newKeyMap(),
		sections:     list,
		rentals:      rentals,
		dispatcher:   dispatcher,
		renderer:     views.NewRenderer(),
		cmdExecutor:  commands.NewExecutor(ctx, src, log),
		inputHandler: input.New(),
		helpRenderer: NewHelpRenderer(),
		pager:        NewPagerOps(nil),
		ctx:          ctx,
		cancel:       cancel,
	}

	m.eventHandler = handlers.NewEventHandler(appState, m.sectionRows,
		cfg.UI.SuccessAlert.Duration, cfg.UI.ErrorAlert.Duration, log)
	m.viewModel = viewmodels.NewViewModel(appState, list, dispatcher, *m.inputHandler.TextInputModel())
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init loads every section
func (m *Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.sections))
	for i, s := range m.sections {
		cmds[i] = m.cmdExecutor.ExecuteFetchAll(i, s)
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.state.InPager {
			return m, nil
		}
		m.state.StatusMessage = ""
		before := m.inputHandler.CurrentMode()

		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if after := m.inputHandler.CurrentMode(); after != before {
			m.enteredMode(after)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		cmd := m.inputHandler.Update(msg)
		model, next := m.handleNonKeyboardMsg(msg)
		return model, tea.Batch(cmd, next)
	}
}

// View renders the model
func (m *Model) View() string {
	if m.state.InPager {
		return ""
	}
	m.keys.rentalsOnly(m.state.ActiveSection == rentalsSection)
	m.viewModel.SetHelp(m.help, m.keys)
	m.viewModel.SetInputMode(m.inputHandler.ModeName(), m.inputHandler.Prompt())
	if ti := m.inputHandler.TextInput(); ti != nil {
		m.viewModel.UpdateTextInput(*ti)
	}
	m.viewModel.SetForm(m.form)
	return m.renderer.Render(m.viewModel.BuildViewState())
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{
		State:   m.state,
		Section: m.active(),
		Form:    m.form,
		History: m.dispatcher.History().Len(),
	}
}

func (m *Model) active() sections.Section {
	i := m.state.ActiveSection
	if i < 0 || i >= len(m.sections) {
		return nil
	}
	return m.sections[i]
}

func (m *Model) sectionRows(entity string) (int, int, bool) {
	for i, s := range m.sections {
		if s.Name() == entity {
			return i, s.Len(), true
		}
	}
	return 0, 0, false
}

// enteredMode prepares state owned by the model when the input mode changes
func (m *Model) enteredMode(mode inputtypes.Mode) {
	switch mode {
	case inputtypes.ModeFilter:
		m.state.FilterField = m.initialFilterField()
	case inputtypes.ModeHistory:
		m.state.HistoryCursor = 0
	}
}

// initialFilterField is the active filter's field, or the first field taking a value
func (m *Model) initialFilterField() int {
	sec := m.active()
	if sec == nil {
		return 0
	}
	fields := sec.Filter().Fields()
	if sec.Filter().Active() {
		current := sec.Filter().Field().Name
		for i, f := range fields {
			if f.Name == current {
				return i
			}
		}
	}
	if len(fields) > 1 {
		return 1
	}
	return 0
}

// processAction handles a single action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	sec := m.active()
	index := m.state.ActiveSection

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(sec, a.Direction)

	case inputtypes.PageAction:
		if sec == nil {
			return nil
		}
		sec.Len() // refresh the page count
		moved := false
		if a.Delta > 0 {
			moved = sec.Pager().Next()
		} else if a.Delta < 0 {
			moved = sec.Pager().Prev()
		}
		if moved {
			m.state.SetCursor(0)
		}

	case inputtypes.SwitchSectionAction:
		if a.Delta != 0 {
			m.state.SwitchSection(m.state.ActiveSection + a.Delta)
		} else {
			m.state.SwitchSection(a.Index)
		}
		if s := m.active(); s != nil {
			m.state.ClampCursor(s.Len())
		}

	case inputtypes.UpdateTextAction:
		return m.updateText(sec, index, a.Text)

	case inputtypes.SubmitTextAction:
		return m.submitText(sec, index, a)

	case inputtypes.CancelTextAction:
		if a.Mode == inputtypes.ModeSearch && sec != nil {
			sec.SetQuery("")
			m.resetPage(sec)
		}

	case inputtypes.CycleFilterFieldAction:
		if sec == nil {
			return nil
		}
		n := len(sec.Filter().Fields())
		if n > 0 {
			m.state.FilterField = ((m.state.FilterField+a.Delta)%n + n) % n
		}

	case inputtypes.ClearFilterAction:
		if sec == nil {
			return nil
		}
		m.resetPage(sec)
		return m.cmdExecutor.ExecuteClearFilter(index, sec)

	case inputtypes.RetryAction:
		if sec == nil {
			return nil
		}
		return m.cmdExecutor.ExecuteLoad(index, sec)

	case inputtypes.OpenFormAction:
		return m.openForm(sec, a.Edit)

	case inputtypes.FormFocusAction:
		m.moveFormFocus(a.Delta)

	case inputtypes.FormCycleChoiceAction:
		m.cycleChoice(a.Delta)

	case inputtypes.FormSubmitAction:
		return m.submitForm(sec, index)

	case inputtypes.FormCancelAction:
		m.closeForm()

	case inputtypes.DismissFormErrorAction:
		m.dispatcher.Dismiss()

	case inputtypes.DeleteAction:
		if sec == nil || a.ID == 0 {
			return nil
		}
		m.log.Debug("delete requested", zap.String("section", sec.Name()), zap.Int64("id", a.ID))
		return m.cmdExecutor.ExecuteDelete(index, sec, a.ID)

	case inputtypes.TransitionAction:
		if index != rentalsSection || a.ID == 0 {
			return nil
		}
		op := logic.OpActivate
		if a.Transition == inputtypes.TransitionCancel {
			op = logic.OpCancel
		}
		return m.cmdExecutor.ExecuteTransition(index, m.rentals, op, a.ID, domain.Date{})

	case inputtypes.CompleteRentalAction:
		if index != rentalsSection || a.ID == 0 {
			return nil
		}
		returned, err := domain.ParseDate(a.Date)
		if err != nil {
			return m.showAlert(domain.AlertError, "Fecha inválida, usa el formato AAAA-MM-DD")
		}
		return m.cmdExecutor.ExecuteTransition(index, m.rentals, logic.OpComplete, a.ID, returned)

	case inputtypes.DismissErrorAction:
		entries := m.dispatcher.History().Entries()
		if len(entries) == 0 {
			return nil
		}
		target := entries[0]
		if a.Selected {
			if m.state.HistoryCursor < 0 || m.state.HistoryCursor >= len(entries) {
				return nil
			}
			target = entries[m.state.HistoryCursor]
		}
		m.dispatcher.History().Dismiss(target.ID)
		if n := m.dispatcher.History().Len(); m.state.HistoryCursor >= n {
			m.state.HistoryCursor = max(n-1, 0)
		}

	case inputtypes.ClearHistoryAction:
		m.dispatcher.History().Clear()
		m.state.HistoryCursor = 0

	case inputtypes.ShowReportsAction:
		if sec == nil {
			return nil
		}
		list := sec.Reports()
		if len(list) == 0 {
			m.state.StatusMessage = "Esta sección no tiene reportes"
			return nil
		}
		m.state.StatusMessage = "Cargando reportes..."
		return m.cmdExecutor.ExecuteReports("Reportes de "+sec.Title(), list, sec.ReportClientID(m.state.Cursor()))

	case inputtypes.ToggleHelpAction:
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContent())

	case inputtypes.QuitAction:
		m.cancel()
		return tea.Quit
	}

	return nil
}

func (m *Model) navigate(sec sections.Section, direction string) {
	if m.inputHandler.CurrentMode() == inputtypes.ModeHistory {
		n := m.dispatcher.History().Len()
		switch direction {
		case "up":
			m.state.HistoryCursor = max(m.state.HistoryCursor-1, 0)
		case "down":
			m.state.HistoryCursor = min(m.state.HistoryCursor+1, max(n-1, 0))
		case "home":
			m.state.HistoryCursor = 0
		case "end":
			m.state.HistoryCursor = max(n-1, 0)
		}
		return
	}
	if sec == nil {
		return
	}

	rows := sec.Len()
	switch direction {
	case "up":
		m.state.MoveCursor(-1, rows)
	case "down":
		m.state.MoveCursor(1, rows)
	case "home":
		sec.Pager().GoToPage(1)
		m.state.SetCursor(0)
	case "end":
		sec.Pager().GoToPage(sec.Pager().TotalPages())
		m.state.SetCursor(max(sec.Len()-1, 0))
	}
}

func (m *Model) resetPage(sec sections.Section) {
	sec.Pager().GoToPage(1)
	m.state.SetCursor(0)
}

func (m *Model) updateText(sec sections.Section, index int, text string) tea.Cmd {
	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeSearch:
		if sec == nil {
			return nil
		}
		reload := sec.SetQuery(text)
		m.resetPage(sec)
		if reload {
			// the filtered subset was dropped, search needs the full collection
			return m.cmdExecutor.ExecuteFetchAll(index, sec)
		}
	case inputtypes.ModeForm:
		if m.state.Submitting {
			return nil
		}
		if field, ok := m.focusedField(); ok && !isChoice(field) {
			m.form.Set(field.Name, text)
		}
	}
	return nil
}

func (m *Model) submitText(sec sections.Section, index int, a inputtypes.SubmitTextAction) tea.Cmd {
	if sec == nil || a.Mode != inputtypes.ModeFilter {
		return nil
	}
	fields := sec.Filter().Fields()
	if m.state.FilterField < 0 || m.state.FilterField >= len(fields) {
		return nil
	}
	field := fields[m.state.FilterField]
	m.log.Debug("filter submitted", zap.String("section", sec.Name()), zap.String("field", field.Name))
	sec.SetQuery("")
	m.resetPage(sec)
	return m.cmdExecutor.ExecuteFilter(index, sec, field.Name, a.Text)
}

func (m *Model) openForm(sec sections.Section, edit bool) tea.Cmd {
	if sec == nil {
		return nil
	}
	var (
		f  *forms.Form
		id int64
	)
	if edit {
		var ok bool
		f, id, ok = sec.EditForm(m.state.Cursor())
		if !ok {
			m.inputHandler.ChangeMode(inputtypes.ModeNormal, "")
			return nil
		}
	} else {
		f = sec.NewForm()
	}

	m.form = f
	m.state.OpenForm(id)
	m.syncFormInput()

	if m.state.ActiveSection == rentalsSection {
		return m.cmdExecutor.ExecuteChoices(m.rentals, id)
	}
	return nil
}

func (m *Model) closeForm() {
	m.dispatcher.FormClosed()
	m.state.CloseForm()
	m.form = nil
}

func (m *Model) focusedField() (forms.Field, bool) {
	if m.form == nil {
		return forms.Field{}, false
	}
	fields := m.form.Fields()
	i := m.state.FormFocus
	if i < 0 || i >= len(fields) {
		return forms.Field{}, false
	}
	return fields[i], true
}

func isChoice(f forms.Field) bool {
	return f.Kind == forms.KindChoice || f.Kind == forms.KindBool
}

// syncFormInput loads the focused text field into the shared input
func (m *Model) syncFormInput() {
	field, ok := m.focusedField()
	if !ok {
		return
	}
	if isChoice(field) {
		m.inputHandler.SetText("")
		return
	}
	m.inputHandler.SetText(m.form.Value(field.Name))
}

func (m *Model) moveFormFocus(delta int) {
	if m.form == nil {
		return
	}
	n := len(m.form.Fields())
	if n == 0 {
		return
	}
	m.state.FormFocus = ((m.state.FormFocus+delta)%n + n) % n
	m.syncFormInput()
}

func (m *Model) cycleChoice(delta int) {
	field, ok := m.focusedField()
	if !ok {
		return
	}
	current := m.form.Value(field.Name)
	if field.Kind == forms.KindBool {
		if current == "true" {
			m.form.Set(field.Name, "false")
		} else {
			m.form.Set(field.Name, "true")
		}
		return
	}

	choices := m.form.Choices(field.Name)
	if len(choices) == 0 {
		return
	}
	next := 0
	for i, c := range choices {
		if c.Value == current {
			next = ((i+delta)%len(choices) + len(choices)) % len(choices)
			break
		}
	}
	m.form.Set(field.Name, choices[next].Value)
}

func (m *Model) submitForm(sec sections.Section, index int) tea.Cmd {
	if m.form == nil || sec == nil || m.state.Submitting {
		return nil
	}
	body, err := sec.Payload(m.form)
	if err != nil {
		m.state.StatusMessage = "Revisa los campos marcados"
		if !errors.Is(err, forms.ErrInvalid) {
			m.log.Debug("draft rejected", zap.String("section", sec.Name()), zap.Error(err))
		}
		return nil
	}
	m.dispatcher.Submitting()
	m.state.Submitting = true
	return m.cmdExecutor.ExecuteSave(index, sec, body, m.state.FormEditID)
}

func (m *Model) showAlert(level domain.AlertLevel, msg string) tea.Cmd {
	return m.eventHandler.HandleEvent(eventbus.AlertEvent{Level: level, Message: msg})
}

// handleMutation routes the outcome of a backend change
func (m *Model) handleMutation(msg commands.MutationMsg) tea.Cmd {
	if msg.Index < 0 || msg.Index >= len(m.sections) {
		return nil
	}
	sec := m.sections[msg.Index]

	if msg.Form {
		m.state.Submitting = false
		if msg.Err == nil {
			m.closeForm()
			m.inputHandler.ChangeMode(inputtypes.ModeNormal, "")
			m.state.ClampSection(msg.Index, sec.Len())
			return nil
		}
		if errors.Is(msg.Err, forms.ErrInvalid) {
			m.state.StatusMessage = "Revisa los campos marcados"
			return nil
		}
		m.dispatcher.FormFailed(msg.Op, sec.Noun(), msg.Err)
		return nil
	}

	if msg.Err == nil {
		m.state.ClampSection(msg.Index, sec.Len())
		return nil
	}
	if errors.Is(msg.Err, context.Canceled) {
		return nil
	}
	text := m.dispatcher.Failed(msg.Op, sec.Noun(), msg.Err)
	m.log.Info("mutation failed", zap.String("section", sec.Name()), zap.String("op", string(msg.Op)), zap.Int64("id", msg.ID), zap.Error(msg.Err))
	if errors.Is(msg.Err, domain.ErrInvalidTransition) {
		// rejected before any request, so the store raised no alert
		return m.showAlert(domain.AlertError, text)
	}
	return nil
}

// handleNonKeyboardMsg processes non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)

	case handlers.ClearAlertMsg:
		m.state.ClearAlert()
		return m, nil

	case commands.LoadedMsg:
		if msg.Index >= 0 && msg.Index < len(m.sections) {
			m.state.ClampSection(msg.Index, m.sections[msg.Index].Len())
		}
		if msg.Err != nil {
			m.log.Debug("load failed", zap.Int("section", msg.Index), zap.String("op", string(msg.Op)), zap.Error(msg.Err))
		}
		return m, nil

	case commands.MutationMsg:
		return m, m.handleMutation(msg)

	case commands.ChoicesMsg:
		if m.form == nil || !m.state.FormOpen || msg.EditID != m.state.FormEditID {
			return m, nil
		}
		if msg.Err != nil {
			m.dispatcher.FormFailed(logic.OpFetch, m.rentals.Noun(), msg.Err)
			return m, nil
		}
		sections.ApplyChoices(m.form, msg.Choices)
		return m, nil

	case commands.ReportMsg:
		m.state.StatusMessage = ""
		return m, m.fetchReportPager(m.helpRenderer.RenderReports(msg.Title, msg.Results))

	case helpPagerMsg:
		if msg.err != nil {
			m.log.Warn("help pager failed", zap.Error(msg.err))
		}
		return m, nil

	case reportPagerMsg:
		if msg.err != nil {
			m.log.Warn("report pager failed", zap.Error(msg.err))
			m.state.StatusMessage = fmt.Sprintf("No se pudieron mostrar los reportes: %v", msg.err)
			return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
		}
		return m, nil

	case pauseRenderingMsg:
		m.state.InPager = true
		return m, nil

	case resumeRenderingMsg:
		m.state.InPager = false
		return m, nil

	case clearStatusMsg:
		m.state.StatusMessage = ""
		return m, nil

	default:
		return m, nil
	}
}

// fetchHelpPager shows help in the ov pager
func (m *Model) fetchHelpPager(content string) tea.Cmd {
	return func() tea.Msg {
		err := m.runPager(content)
		return helpPagerMsg{err: err}
	}
}

// fetchReportPager shows report tables in the ov pager
func (m *Model) fetchReportPager(content string) tea.Cmd {
	return func() tea.Msg {
		err := m.runPager(content)
		return reportPagerMsg{err: err}
	}
}

func (m *Model) runPager(content string) error {
	if m.program == nil {
		return fmt.Errorf("program not set")
	}
	m.program.Send(pauseRenderingMsg{})
	defer m.program.Send(resumeRenderingMsg{})
	return m.pager.ShowInPager(content)
}

// Close cancels requests that are still running
func (m *Model) Close() {
	m.cancel()
}

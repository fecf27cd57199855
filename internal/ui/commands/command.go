package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rentaldash/internal/domain"
	"rentaldash/internal/logic"
	"rentaldash/internal/reports"
	"rentaldash/internal/ui/sections"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	Ctx     context.Context
	Log     *zap.Logger
	Reports reports.Source
}

// LoadedMsg reports a finished fetch of the section at Index
type LoadedMsg struct {
	Index int
	Op    logic.Operation
	Err   error
}

// MutationMsg reports a finished create, update, delete or transition.
// Form is set when the request came from the open form.
type MutationMsg struct {
	Index int
	Op    logic.Operation
	ID    int64
	Form  bool
	Err   error
}

// ChoicesMsg carries the picker options of a rental form
type ChoicesMsg struct {
	EditID  int64
	Choices sections.Choices
	Err     error
}

// ReportMsg carries finished reports ready for the pager
type ReportMsg struct {
	Title   string
	Results []reports.Result
}

// FetchCommand runs one fetch of a section
type FetchCommand struct {
	ctx     *CommandContext
	index   int
	section sections.Section
	op      logic.Operation
	fetch   func(ctx context.Context, s sections.Section) error
}

// NewFetchCommand creates a fetch command
func NewFetchCommand(ctx *CommandContext, index int, s sections.Section, op logic.Operation, fetch func(context.Context, sections.Section) error) *FetchCommand {
	return &FetchCommand{ctx: ctx, index: index, section: s, op: op, fetch: fetch}
}

// Execute performs the fetch
func (c *FetchCommand) Execute() tea.Cmd {
	return func() tea.Msg {
		err := c.fetch(c.ctx.Ctx, c.section)
		if err != nil {
			c.ctx.Log.Debug("fetch finished with error", zap.String("section", c.section.Name()), zap.Error(err))
		}
		return LoadedMsg{Index: c.index, Op: c.op, Err: err}
	}
}

// SaveCommand submits a request body built from a validated draft
type SaveCommand struct {
	ctx     *CommandContext
	index   int
	section sections.Section
	body    any
	id      int64
}

// NewSaveCommand creates a save command; id is 0 for create
func NewSaveCommand(ctx *CommandContext, index int, s sections.Section, body any, id int64) *SaveCommand {
	return &SaveCommand{ctx: ctx, index: index, section: s, body: body, id: id}
}

// Execute performs the save
func (c *SaveCommand) Execute() tea.Cmd {
	op := logic.OpCreate
	if c.id != 0 {
		op = logic.OpUpdate
	}
	return func() tea.Msg {
		err := c.section.Save(c.ctx.Ctx, c.body, c.id)
		return MutationMsg{Index: c.index, Op: op, ID: c.id, Form: true, Err: err}
	}
}

// DeleteCommand removes a record
type DeleteCommand struct {
	ctx     *CommandContext
	index   int
	section sections.Section
	id      int64
}

// NewDeleteCommand creates a delete command
func NewDeleteCommand(ctx *CommandContext, index int, s sections.Section, id int64) *DeleteCommand {
	return &DeleteCommand{ctx: ctx, index: index, section: s, id: id}
}

// Execute performs the delete
func (c *DeleteCommand) Execute() tea.Cmd {
	return func() tea.Msg {
		err := c.section.Delete(c.ctx.Ctx, c.id)
		return MutationMsg{Index: c.index, Op: logic.OpDelete, ID: c.id, Err: err}
	}
}

// TransitionCommand moves a rental through its lifecycle
type TransitionCommand struct {
	ctx      *CommandContext
	index    int
	rentals  *sections.Rentals
	op       logic.Operation
	id       int64
	returned domain.Date
}

// NewTransitionCommand creates a transition command. returned is only read by OpComplete.
func NewTransitionCommand(ctx *CommandContext, index int, r *sections.Rentals, op logic.Operation, id int64, returned domain.Date) *TransitionCommand {
	return &TransitionCommand{ctx: ctx, index: index, rentals: r, op: op, id: id, returned: returned}
}

// Execute performs the transition
func (c *TransitionCommand) Execute() tea.Cmd {
	return func() tea.Msg {
		var err error
		switch c.op {
		case logic.OpActivate:
			err = c.rentals.Activate(c.ctx.Ctx, c.id)
		case logic.OpComplete:
			err = c.rentals.Complete(c.ctx.Ctx, c.id, c.returned)
		case logic.OpCancel:
			err = c.rentals.Cancel(c.ctx.Ctx, c.id)
		}
		return MutationMsg{Index: c.index, Op: c.op, ID: c.id, Err: err}
	}
}

// ChoicesCommand loads the rental form pickers
type ChoicesCommand struct {
	ctx     *CommandContext
	rentals *sections.Rentals
	editID  int64
}

// NewChoicesCommand creates a choices command
func NewChoicesCommand(ctx *CommandContext, r *sections.Rentals, editID int64) *ChoicesCommand {
	return &ChoicesCommand{ctx: ctx, rentals: r, editID: editID}
}

// Execute loads the choices
func (c *ChoicesCommand) Execute() tea.Cmd {
	return func() tea.Msg {
		choices, err := c.rentals.LoadChoices(c.ctx.Ctx, c.editID)
		return ChoicesMsg{EditID: c.editID, Choices: choices, Err: err}
	}
}

// ReportCommand runs a set of reports in parallel
type ReportCommand struct {
	ctx      *CommandContext
	title    string
	list     []reports.Report
	clientID int64
}

// NewReportCommand creates a report command
func NewReportCommand(ctx *CommandContext, title string, list []reports.Report, clientID int64) *ReportCommand {
	return &ReportCommand{ctx: ctx, title: title, list: list, clientID: clientID}
}

// Execute runs the reports
func (c *ReportCommand) Execute() tea.Cmd {
	return func() tea.Msg {
		results := reports.RunAll(c.ctx.Ctx, c.ctx.Reports, c.list, c.clientID)
		return ReportMsg{Title: c.title, Results: results}
	}
}

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

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor. ctx bounds every request it starts.
func NewExecutor(ctx context.Context, src reports.Source, log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{
		ctx: &CommandContext{
			Ctx:     ctx,
			Log:     log.Named("commands"),
			Reports: src,
		},
	}
}

// ExecuteLoad replays the last fetch of a section
func (e *Executor) ExecuteLoad(index int, s sections.Section) tea.Cmd {
	return NewFetchCommand(e.ctx, index, s, logic.OpFetch, func(ctx context.Context, s sections.Section) error {
		return s.Load(ctx)
	}).Execute()
}

// ExecuteFetchAll reloads the full collection of a section
func (e *Executor) ExecuteFetchAll(index int, s sections.Section) tea.Cmd {
	return NewFetchCommand(e.ctx, index, s, logic.OpFetch, func(ctx context.Context, s sections.Section) error {
		return s.FetchAll(ctx)
	}).Execute()
}

// ExecuteFilter submits a server filter
func (e *Executor) ExecuteFilter(index int, s sections.Section, field, value string) tea.Cmd {
	return NewFetchCommand(e.ctx, index, s, logic.OpFilter, func(ctx context.Context, s sections.Section) error {
		return s.ApplyFilter(ctx, field, value)
	}).Execute()
}

// ExecuteClearFilter drops the server filter
func (e *Executor) ExecuteClearFilter(index int, s sections.Section) tea.Cmd {
	return NewFetchCommand(e.ctx, index, s, logic.OpFetch, func(ctx context.Context, s sections.Section) error {
		return s.ClearFilter(ctx)
	}).Execute()
}

// ExecuteSave submits a request body; id is 0 for create
func (e *Executor) ExecuteSave(index int, s sections.Section, body any, id int64) tea.Cmd {
	return NewSaveCommand(e.ctx, index, s, body, id).Execute()
}

// ExecuteDelete removes a record
func (e *Executor) ExecuteDelete(index int, s sections.Section, id int64) tea.Cmd {
	return NewDeleteCommand(e.ctx, index, s, id).Execute()
}

// ExecuteTransition runs a rental lifecycle change
func (e *Executor) ExecuteTransition(index int, r *sections.Rentals, op logic.Operation, id int64, returned domain.Date) tea.Cmd {
	return NewTransitionCommand(e.ctx, index, r, op, id, returned).Execute()
}

// ExecuteChoices loads the pickers of a rental form
func (e *Executor) ExecuteChoices(r *sections.Rentals, editID int64) tea.Cmd {
	return NewChoicesCommand(e.ctx, r, editID).Execute()
}

// ExecuteReports runs reports for the pager
func (e *Executor) ExecuteReports(title string, list []reports.Report, clientID int64) tea.Cmd {
	return NewReportCommand(e.ctx, title, list, clientID).Execute()
}

package input

import (
	"rentaldash/internal/domain"
	"rentaldash/internal/forms"
	"rentaldash/internal/ui/sections"
	"rentaldash/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State   *state.AppState
	Section sections.Section
	Form    *forms.Form // open draft, nil when no form is shown
	History int         // number of error history entries
}

// CurrentIndex returns the selected row on the current page
func (c *ModelContext) CurrentIndex() int {
	return c.State.Cursor()
}

// TotalItems returns the number of rows on the current page
func (c *ModelContext) TotalItems() int {
	if c.Section == nil {
		return 0
	}
	return c.Section.Len()
}

// HasSelection returns true if the cursor is on a record
func (c *ModelContext) HasSelection() bool {
	_, ok := c.selected()
	return ok
}

// SelectedID returns the id of the record under the cursor, 0 when none
func (c *ModelContext) SelectedID() int64 {
	id, _ := c.selected()
	return id
}

// SelectedStatus returns the rental state under the cursor
func (c *ModelContext) SelectedStatus() (domain.RentalStatus, bool) {
	if c.Section == nil {
		return "", false
	}
	return c.Section.StatusAt(c.CurrentIndex())
}

func (c *ModelContext) SearchQuery() string {
	if c.Section == nil {
		return ""
	}
	return c.Section.Query()
}

func (c *ModelContext) FilterActive() bool {
	return c.Section != nil && c.Section.Filter().Active()
}

func (c *ModelContext) FilterValue() string {
	if c.Section == nil {
		return ""
	}
	return c.Section.Filter().Value()
}

// FormChoiceFocused reports whether the focused form field is picked from a list
func (c *ModelContext) FormChoiceFocused() bool {
	if c.Form == nil {
		return false
	}
	fields := c.Form.Fields()
	i := c.State.FormFocus
	if i < 0 || i >= len(fields) {
		return false
	}
	return fields[i].Kind == forms.KindChoice || fields[i].Kind == forms.KindBool
}

// FormSubmitting reports whether the open draft is waiting for the backend
func (c *ModelContext) FormSubmitting() bool {
	return c.Form != nil && c.State.Submitting
}

func (c *ModelContext) HistoryLen() int {
	return c.History
}

func (c *ModelContext) selected() (int64, bool) {
	if c.Section == nil {
		return 0, false
	}
	return c.Section.IDAt(c.CurrentIndex())
}

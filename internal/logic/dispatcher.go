package logic

// Dispatcher routes mutation failures. Failures of form submissions become
// the form's current error; everything else goes straight to the history.
// A current error is folded into the history when it is dismissed or its
// form is closed, and discarded when the form is submitted again.
type Dispatcher struct {
	history *ErrorHistory
	current *ErrorEntry
}

// NewDispatcher creates a dispatcher writing to history
func NewDispatcher(history *ErrorHistory) *Dispatcher {
	return &Dispatcher{history: history}
}

// History returns the backing error history
func (d *Dispatcher) History() *ErrorHistory { return d.history }

// Current returns the form-level error, if any
func (d *Dispatcher) Current() (ErrorEntry, bool) {
	if d.current == nil {
		return ErrorEntry{}, false
	}
	return *d.current, true
}

// Submitting discards the previous form error without recording it
func (d *Dispatcher) Submitting() {
	d.current = nil
}

// FormFailed sets the form-level error
func (d *Dispatcher) FormFailed(op Operation, noun Noun, err error) string {
	msg := FailureMessage(op, noun, err)
	d.current = &ErrorEntry{Operation: op, Message: msg, At: d.history.now()}
	return msg
}

// Failed records a failure outside any form
func (d *Dispatcher) Failed(op Operation, noun Noun, err error) string {
	msg := FailureMessage(op, noun, err)
	d.history.Add(op, msg)
	return msg
}

// Dismiss moves the current error into the history
func (d *Dispatcher) Dismiss() {
	d.fold()
}

// FormClosed is called when the form goes away; an uncleared error is kept in the history
func (d *Dispatcher) FormClosed() {
	d.fold()
}

func (d *Dispatcher) fold() {
	if d.current == nil {
		return
	}
	d.history.Add(d.current.Operation, d.current.Message)
	d.current = nil
}

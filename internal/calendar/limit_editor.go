package calendar

import "fmt"

// EditorState is the lifecycle of a per-day limit edit.
type EditorState int

const (
	EditorViewing EditorState = iota
	EditorEditing
	EditorSaving
)

func (s EditorState) String() string {
	switch s {
	case EditorViewing:
		return "viewing"
	case EditorEditing:
		return "editing"
	case EditorSaving:
		return "saving"
	default:
		return "unknown"
	}
}

// LimitEditor tracks a single day's limit edit. Saving always writes an
// explicit per-day override; there is no transition that clears a day back
// to inheriting the global limit. A failed save returns to editing with
// the draft value intact so the input is not lost.
type LimitEditor struct {
	state EditorState
	draft int
}

// NewLimitEditor starts in the viewing state.
func NewLimitEditor() *LimitEditor {
	return &LimitEditor{state: EditorViewing}
}

// State returns the current lifecycle state.
func (e *LimitEditor) State() EditorState {
	return e.state
}

// Draft returns the value being edited. Only meaningful while editing
// or saving.
func (e *LimitEditor) Draft() int {
	return e.draft
}

// Begin starts an edit from the current effective limit.
func (e *LimitEditor) Begin(current int) error {
	if e.state != EditorViewing {
		return fmt.Errorf("cannot begin edit while %s", e.state)
	}
	e.state = EditorEditing
	e.draft = current
	return nil
}

// SetDraft updates the in-progress value.
func (e *LimitEditor) SetDraft(value int) error {
	if e.state != EditorEditing {
		return fmt.Errorf("cannot update draft while %s", e.state)
	}
	e.draft = value
	return nil
}

// Cancel abandons the edit and returns to viewing.
func (e *LimitEditor) Cancel() error {
	if e.state != EditorEditing {
		return fmt.Errorf("cannot cancel while %s", e.state)
	}
	e.state = EditorViewing
	return nil
}

// Save runs the supplied persist function with the draft value. On
// success the editor returns to viewing; on failure it returns to editing
// with the draft untouched.
func (e *LimitEditor) Save(persist func(value int) error) error {
	if e.state != EditorEditing {
		return fmt.Errorf("cannot save while %s", e.state)
	}
	e.state = EditorSaving

	if err := persist(e.draft); err != nil {
		e.state = EditorEditing
		return fmt.Errorf("failed to save limit: %w", err)
	}

	e.state = EditorViewing
	return nil
}

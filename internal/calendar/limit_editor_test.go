package calendar

import (
	"errors"
	"testing"
)

func TestLimitEditorHappyPath(t *testing.T) {
	e := NewLimitEditor()

	if e.State() != EditorViewing {
		t.Fatalf("initial state = %v, want viewing", e.State())
	}

	if err := e.Begin(250); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := e.SetDraft(120); err != nil {
		t.Fatalf("SetDraft() error = %v", err)
	}

	var saved int
	err := e.Save(func(value int) error {
		saved = value
		return nil
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if saved != 120 {
		t.Errorf("persisted value = %d, want 120", saved)
	}
	if e.State() != EditorViewing {
		t.Errorf("state after save = %v, want viewing", e.State())
	}
}

func TestLimitEditorCancel(t *testing.T) {
	e := NewLimitEditor()

	if err := e.Begin(250); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := e.Cancel(); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if e.State() != EditorViewing {
		t.Errorf("state after cancel = %v, want viewing", e.State())
	}
}

func TestLimitEditorSaveFailureKeepsDraft(t *testing.T) {
	e := NewLimitEditor()

	if err := e.Begin(250); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := e.SetDraft(99); err != nil {
		t.Fatalf("SetDraft() error = %v", err)
	}

	saveErr := errors.New("backend down")
	err := e.Save(func(int) error { return saveErr })
	if err == nil {
		t.Fatal("Save() expected error, got nil")
	}
	if !errors.Is(err, saveErr) {
		t.Errorf("Save() error = %v, want wrapped %v", err, saveErr)
	}

	if e.State() != EditorEditing {
		t.Errorf("state after failed save = %v, want editing", e.State())
	}
	if e.Draft() != 99 {
		t.Errorf("draft after failed save = %d, want 99 kept intact", e.Draft())
	}
}

func TestLimitEditorInvalidTransitions(t *testing.T) {
	e := NewLimitEditor()

	if err := e.SetDraft(10); err == nil {
		t.Error("SetDraft() while viewing expected error")
	}
	if err := e.Cancel(); err == nil {
		t.Error("Cancel() while viewing expected error")
	}
	if err := e.Save(func(int) error { return nil }); err == nil {
		t.Error("Save() while viewing expected error")
	}

	if err := e.Begin(1); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := e.Begin(2); err == nil {
		t.Error("Begin() while editing expected error")
	}
}

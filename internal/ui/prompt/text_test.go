package prompt

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func typeText(m textInputModel, s string) textInputModel {
	for _, r := range s {
		updated, _ := m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
		m = updated.(textInputModel)
	}
	return m
}

func TestTextInputModel_Submit(t *testing.T) {
	t.Parallel()

	m := newTextInputModel("Branch:", TextOptions{})
	m = typeText(m, "feature")

	updated, cmd := m.Update(keyPress("enter"))
	um := updated.(textInputModel)

	if !um.done || um.cancelled {
		t.Errorf("done = %v, cancelled = %v, want done and not cancelled", um.done, um.cancelled)
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
	if got := um.textInput.Value(); got != "feature" {
		t.Errorf("value = %q, want %q", got, "feature")
	}
}

func TestTextInputModel_Cancel(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"esc", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			t.Parallel()
			m := newTextInputModel("Branch:", TextOptions{})
			updated, _ := m.Update(keyPress(key))
			um := updated.(textInputModel)
			if !um.cancelled || !um.done {
				t.Errorf("cancelled = %v, done = %v, want both true", um.cancelled, um.done)
			}
		})
	}
}

func TestTextInputModel_ValidateBlocksSubmit(t *testing.T) {
	t.Parallel()

	errEmpty := errors.New("branch name required")
	m := newTextInputModel("Branch:", TextOptions{
		Validate: func(s string) error {
			if s == "" {
				return errEmpty
			}
			return nil
		},
	})

	updated, cmd := m.Update(keyPress("enter"))
	um := updated.(textInputModel)
	if um.done {
		t.Fatal("expected prompt to stay open on invalid input")
	}
	if cmd != nil {
		t.Error("expected no command on invalid input")
	}
	if !errors.Is(um.textInput.Err, errEmpty) {
		t.Errorf("Err = %v, want %v", um.textInput.Err, errEmpty)
	}

	um = typeText(um, "topic")
	updated, _ = um.Update(keyPress("enter"))
	if !updated.(textInputModel).done {
		t.Error("expected prompt to finish once input is valid")
	}
}

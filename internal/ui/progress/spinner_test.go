package progress

import "testing"

func TestSpinner_QuietNeverStarts(t *testing.T) {
	t.Parallel()

	s := NewSpinner("Loading history", true)
	s.Start()
	if s.isRunning {
		t.Fatal("quiet spinner should not start")
	}
	s.UpdateMessage("Inferring branches")
	if s.lastMsg != "Inferring branches" {
		t.Errorf("lastMsg = %q, want %q", s.lastMsg, "Inferring branches")
	}
	s.Stop()
}

func TestSpinnerModel_MessageUpdate(t *testing.T) {
	t.Parallel()

	m := spinnerModel{message: "one"}
	updated, cmd := m.Update(messageUpdate("two"))
	um := updated.(spinnerModel)
	if um.message != "two" {
		t.Errorf("message = %q, want %q", um.message, "two")
	}
	if cmd == nil {
		t.Error("expected command waiting for the next message")
	}
	if view := (spinnerModel{}).View(); view.Content != "" {
		t.Errorf("empty message should render nothing, got %q", view.Content)
	}
}

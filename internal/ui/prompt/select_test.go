package prompt

import (
	"testing"
)

func TestSelectModel_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		keys      []string
		selected  int
		done      bool
		cancelled bool
		skipped   bool
	}{
		{"enter picks first", []string{"enter"}, 0, true, false, false},
		{"down then enter", []string{"j", "enter"}, 1, true, false, false},
		{"esc cancels", []string{"esc"}, -1, true, true, false},
		{"q cancels", []string{"q"}, -1, true, true, false},
		{"s skips", []string{"s"}, -1, true, false, true},
		{"no key leaves prompt open", nil, -1, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newSelectModel("Branch for abc1234", []string{"feature", "main", "topic"})
			for _, k := range tt.keys {
				updated, _ := m.Update(keyPress(k))
				m = updated.(selectModel)
			}

			if m.selected != tt.selected {
				t.Errorf("selected = %d, want %d", m.selected, tt.selected)
			}
			if m.done != tt.done {
				t.Errorf("done = %v, want %v", m.done, tt.done)
			}
			if m.cancelled != tt.cancelled {
				t.Errorf("cancelled = %v, want %v", m.cancelled, tt.cancelled)
			}
			if m.skipped != tt.skipped {
				t.Errorf("skipped = %v, want %v", m.skipped, tt.skipped)
			}
		})
	}
}

func TestSelectModel_ViewEmptyWhenDone(t *testing.T) {
	t.Parallel()

	m := newSelectModel("Pick", []string{"a", "b"})
	if view := m.View(); view.Content == "" {
		t.Error("expected non-empty view while open")
	}

	updated, _ := m.Update(keyPress("enter"))
	if view := updated.(selectModel).View(); view.Content != "" {
		t.Errorf("expected empty view after selection, got %q", view.Content)
	}
}

func TestSelect_NoOptions(t *testing.T) {
	t.Parallel()

	res, err := Select("Pick", nil)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if !res.Cancelled {
		t.Error("expected empty option list to cancel")
	}
}

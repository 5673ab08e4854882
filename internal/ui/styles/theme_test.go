package styles

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/lineage/internal/config"
)

// Tests in this file mutate the global theme and do not run in parallel.

func TestSelectTheme(t *testing.T) {
	dark := func() bool { return true }
	light := func() bool { return false }

	tests := []struct {
		name    string
		theme   string
		isDark  func() bool
		primary any
	}{
		{"default", "default", dark, lipgloss.Color("62")},
		{"empty falls back to default", "", dark, lipgloss.Color("62")},
		{"unknown falls back to default", "solarized", dark, lipgloss.Color("62")},
		{"dark only ignores background", "dracula", light, lipgloss.Color("#bd93f9")},
		{"nord dark", "nord", dark, lipgloss.Color("#88c0d0")},
		{"nord light", "nord", light, lipgloss.Color("#5e81ac")},
		{"none", "none", dark, lipgloss.NoColor{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectTheme(tt.theme, tt.isDark)
			if got.Primary != tt.primary {
				t.Errorf("Primary = %v, want %v", got.Primary, tt.primary)
			}
		})
	}
}

func TestApply_UpdatesGlobalStyles(t *testing.T) {
	Apply(DraculaTheme)
	defer Apply(DefaultTheme)

	if Primary != lipgloss.Color("#bd93f9") {
		t.Errorf("expected Primary to be updated to dracula color, got %v", Primary)
	}
	if PrimaryStyle.GetForeground() != lipgloss.Color("#bd93f9") {
		t.Errorf("expected PrimaryStyle foreground to be updated, got %v", PrimaryStyle.GetForeground())
	}
	if Current().Accent != DraculaTheme.Accent {
		t.Errorf("Current() not updated")
	}
}

func TestInit_NonTerminalDisablesColor(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	defer Apply(DefaultTheme)

	if ColorEnabled(f) {
		t.Error("regular file must not report color support")
	}
	Init("dracula", f)
	if _, ok := Current().Primary.(lipgloss.NoColor); !ok {
		t.Errorf("expected NoneTheme for non-terminal output, got %v", Current().Primary)
	}
}

func TestPresetNamesMatchConfig(t *testing.T) {
	names := PresetNames()
	for _, name := range config.ValidThemes {
		if !slices.Contains(names, name) {
			t.Errorf("config theme %q has no preset", name)
		}
		if _, ok := themeFamilies[name]; !ok {
			t.Errorf("config theme %q has no family", name)
		}
	}
}

func TestRevision(t *testing.T) {
	Apply(NoneTheme)
	defer Apply(DefaultTheme)

	if got := Revision("0123456789abcdef"); got != "0123456" {
		t.Errorf("Revision() = %q", got)
	}
	if got := Revision("abc"); got != "abc" {
		t.Errorf("Revision() = %q", got)
	}
}

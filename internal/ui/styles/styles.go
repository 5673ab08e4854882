// Package styles provides shared lipgloss styles for UI components.
//
// Colors come from the active [Theme]; call [Init] once after loading
// config. Until then the default theme is used.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors of the active theme
var (
	Primary color.Color = DefaultTheme.Primary
	Accent  color.Color = DefaultTheme.Accent
	Success color.Color = DefaultTheme.Success
	Error   color.Color = DefaultTheme.Error
	Muted   color.Color = DefaultTheme.Muted
	Normal  color.Color = DefaultTheme.Normal
	Info    color.Color = DefaultTheme.Info
	Warning color.Color = DefaultTheme.Warning
)

// Common styles
var (
	Bold = lipgloss.NewStyle().Bold(true)

	PrimaryStyle lipgloss.Style
	AccentStyle  lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
	NormalStyle  lipgloss.Style
	InfoStyle    lipgloss.Style
	WarningStyle lipgloss.Style

	// HeaderStyle is used for table headers and section titles
	HeaderStyle lipgloss.Style
)

func init() {
	applyTheme(DefaultTheme)
}

// Status symbols
const (
	SymbolAssigned   = "✓"
	SymbolAmbiguous  = "◐"
	SymbolUnresolved = "?"
	SymbolWarning    = "!"
)

// Revision renders a shortened commit id.
func Revision(rev string) string {
	return PrimaryStyle.Render(rev[:min(7, len(rev))])
}

// Branch renders a branch name.
func Branch(name string) string {
	return AccentStyle.Render(name)
}

package styles

import (
	"image/color"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
)

// Theme defines the color palette for UI components
type Theme struct {
	Primary color.Color // revisions, borders, titles
	Accent  color.Color // branch names, selected items
	Success color.Color // assigned
	Error   color.Color // errors
	Muted   color.Color // secondary text
	Normal  color.Color // standard text
	Info    color.Color // informational text
	Warning color.Color // ambiguous, stale report
}

// themeFamily groups light and dark variants of a theme
type themeFamily struct {
	Light *Theme // nil if no light variant
	Dark  *Theme // nil if no dark variant
}

// Preset themes - Dark variants
var (
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),  // cyan/teal
		Accent:  lipgloss.Color("212"), // pink/magenta
		Success: lipgloss.Color("82"),  // green
		Error:   lipgloss.Color("196"), // red
		Muted:   lipgloss.Color("240"), // dark gray
		Normal:  lipgloss.Color("252"), // light gray
		Info:    lipgloss.Color("244"), // gray
		Warning: lipgloss.Color("214"), // orange
	}

	DraculaTheme = Theme{
		Primary: lipgloss.Color("#bd93f9"), // purple
		Accent:  lipgloss.Color("#ff79c6"), // pink
		Success: lipgloss.Color("#50fa7b"), // green
		Error:   lipgloss.Color("#ff5555"), // red
		Muted:   lipgloss.Color("#6272a4"), // comment
		Normal:  lipgloss.Color("#f8f8f2"), // foreground
		Info:    lipgloss.Color("#8be9fd"), // cyan
		Warning: lipgloss.Color("#ffb86c"), // orange
	}

	NordTheme = Theme{
		Primary: lipgloss.Color("#88c0d0"), // nord8
		Accent:  lipgloss.Color("#b48ead"), // nord15
		Success: lipgloss.Color("#a3be8c"), // nord14
		Error:   lipgloss.Color("#bf616a"), // nord11
		Muted:   lipgloss.Color("#4c566a"), // nord3
		Normal:  lipgloss.Color("#eceff4"), // nord6
		Info:    lipgloss.Color("#81a1c1"), // nord9
		Warning: lipgloss.Color("#ebcb8b"), // nord13
	}

	// NoneTheme renders without colors; bold/italic are preserved
	NoneTheme = Theme{
		Primary: lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Normal:  lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
	}
)

// NordLightTheme is the light variant of nord
var NordLightTheme = Theme{
	Primary: lipgloss.Color("#5e81ac"), // nord10
	Accent:  lipgloss.Color("#b48ead"), // nord15
	Success: lipgloss.Color("#a3be8c"), // nord14
	Error:   lipgloss.Color("#bf616a"), // nord11
	Muted:   lipgloss.Color("#9a9a9a"), // gray
	Normal:  lipgloss.Color("#2e3440"), // nord0
	Info:    lipgloss.Color("#81a1c1"), // nord9
	Warning: lipgloss.Color("#d08770"), // nord12
}

// themeFamilies maps theme names accepted in config to their variants
var themeFamilies = map[string]themeFamily{
	"none":    {Light: &NoneTheme, Dark: &NoneTheme},
	"default": {Dark: &DefaultTheme},
	"dracula": {Dark: &DraculaTheme},
	"nord":    {Light: &NordLightTheme, Dark: &NordTheme},
}

// currentTheme holds the active theme
var currentTheme = DefaultTheme

// Current returns the current theme
func Current() Theme {
	return currentTheme
}

// Init activates the named theme for output written to out.
// Colors are disabled when out is not a terminal or its color profile
// cannot show colors (NO_COLOR, dumb terminals).
func Init(name string, out *os.File) {
	if !ColorEnabled(out) {
		Apply(NoneTheme)
		return
	}
	Apply(selectTheme(name, func() bool {
		return lipgloss.HasDarkBackground(os.Stdin, out)
	}))
}

// ColorEnabled reports whether out can display colors.
func ColorEnabled(out *os.File) bool {
	if out == nil || !(isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())) {
		return false
	}
	return colorprofile.Detect(out, os.Environ()) >= colorprofile.ANSI
}

// selectTheme picks the variant of the named family. isDark is only queried
// for families with both variants.
func selectTheme(name string, isDark func() bool) Theme {
	family, ok := themeFamilies[name]
	if !ok {
		family = themeFamilies["default"]
	}

	var theme *Theme
	switch {
	case family.Light == nil:
		theme = family.Dark
	case family.Dark == nil:
		theme = family.Light
	case isDark():
		theme = family.Dark
	default:
		theme = family.Light
	}
	return *theme
}

// Apply makes t the active theme and updates all global styles.
func Apply(t Theme) {
	currentTheme = t
	applyTheme(t)
}

// applyTheme updates all global style variables to use the given theme
func applyTheme(t Theme) {
	Primary = t.Primary
	Accent = t.Accent
	Success = t.Success
	Error = t.Error
	Muted = t.Muted
	Normal = t.Normal
	Info = t.Info
	Warning = t.Warning

	PrimaryStyle = lipgloss.NewStyle().Foreground(t.Primary)
	AccentStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	NormalStyle = lipgloss.NewStyle().Foreground(t.Normal)
	InfoStyle = lipgloss.NewStyle().Foreground(t.Info).Italic(true)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)

	HeaderStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
}

// PresetNames returns the theme names accepted in config
func PresetNames() []string {
	return []string{"default", "none", "dracula", "nord"}
}

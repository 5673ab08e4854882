package prompt

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/lineage/internal/ui/styles"
)

// TextInputResult holds the result of a text input prompt.
type TextInputResult struct {
	Value     string
	Cancelled bool
}

// TextOptions configures a text input prompt.
type TextOptions struct {
	Placeholder string
	// Suggestions are offered for tab completion.
	Suggestions []string
	// Validate rejects input; enter is ignored while it returns an error.
	Validate func(string) error
}

type textInputModel struct {
	textInput textinput.Model
	prompt    string
	done      bool
	cancelled bool
}

func newTextInputModel(prompt string, opts TextOptions) textInputModel {
	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.Focus()
	ti.CharLimit = 255
	ti.SetWidth(50)
	if len(opts.Suggestions) > 0 {
		ti.ShowSuggestions = true
		ti.SetSuggestions(opts.Suggestions)
	}
	if opts.Validate != nil {
		ti.Validate = func(s string) error { return opts.Validate(strings.TrimSpace(s)) }
	}
	return textInputModel{textInput: ti, prompt: prompt}
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "enter":
			if m.textInput.Validate != nil {
				m.textInput.Err = m.textInput.Validate(m.textInput.Value())
			}
			if m.textInput.Err != nil {
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m textInputModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	view := fmt.Sprintf("%s\n%s", m.prompt, m.textInput.View())
	if m.textInput.Err != nil {
		view += "\n" + styles.ErrorStyle.Render(m.textInput.Err.Error())
	}
	return tea.NewView(view)
}

// TextInput shows a text input prompt and returns the trimmed input.
func TextInput(prompt string, opts TextOptions) (TextInputResult, error) {
	finalModel, err := run(newTextInputModel(prompt, opts))
	if err != nil {
		return TextInputResult{}, err
	}
	m := finalModel.(textInputModel)
	return TextInputResult{
		Value:     strings.TrimSpace(m.textInput.Value()),
		Cancelled: m.cancelled,
	}, nil
}

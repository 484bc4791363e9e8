package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// formModel wraps a huh form in Bubble Tea for proper escape handling
type formModel struct {
	form    *huh.Form
	aborted bool
}

func (m formModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, tea.Quit
	}

	return m, cmd
}

func (m formModel) View() string {
	if m.form.State == huh.StateCompleted {
		return ""
	}
	return m.form.View()
}

// runForm drives the form to completion. It reports false when the user
// cancelled without finishing.
func runForm(form *huh.Form) (bool, error) {
	p := tea.NewProgram(formModel{form: form})
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	return !finalModel.(formModel).aborted, nil
}

// SelectShapeButton presents an interactive choice of gesture trigger button.
// It returns "" when the user cancels.
func SelectShapeButton(buttons []string, current string) (string, error) {
	if len(buttons) == 0 {
		return "", fmt.Errorf("no buttons to select from")
	}

	options := make([]huh.Option[string], len(buttons))
	for i, b := range buttons {
		label := b
		if b == current {
			label += Muted("  (current)")
		}
		options[i] = huh.NewOption(label, b)
	}

	selected := current

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select Shape Button").
				Description("Gestures start while this button is held (esc to cancel)").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(customTheme()).WithShowHelp(false)

	done, err := runForm(form)
	if err != nil || !done {
		return "", err
	}
	return selected, nil
}

// BindingPrompt is what the record flow asks the user after a gesture is
// captured.
type BindingPrompt struct {
	Comment string
	Cmd     string
}

// PromptBinding asks for the comment and command of a freshly recorded
// gesture. It returns nil when the user cancels.
func PromptBinding(trigger string) (*BindingPrompt, error) {
	var answer BindingPrompt

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Comment").
				Description("Describe the binding for "+trigger).
				Value(&answer.Comment),
			huh.NewInput().
				Title("Command").
				Description("Shell-style command line to run (esc to cancel)").
				Value(&answer.Cmd).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("command must not be empty")
					}
					return nil
				}),
		),
	).WithTheme(customTheme()).WithShowHelp(false)

	done, err := runForm(form)
	if err != nil || !done {
		return nil, err
	}
	return &answer, nil
}

// customTheme returns a custom huh theme matching our style palette
func customTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorPrimary)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(lipgloss.Color("#F9FAFB"))
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPrimary)

	return t
}

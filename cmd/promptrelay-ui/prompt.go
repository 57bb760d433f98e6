package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"promptrelay"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1)
	optionStyle   = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().PaddingLeft(0).Foreground(lipgloss.Color("170")).SetString("> ")
	helpStyle     = lipgloss.NewStyle().Faint(true).MarginTop(1)
)

// promptModel presents one question: predefined options first, then a
// free-text row. Enter submits, esc cancels.
type promptModel struct {
	request   promptrelay.Request
	input     textinput.Model
	cursor    int
	answer    string
	cancelled bool
	done      bool
}

func newPromptModel(request promptrelay.Request) promptModel {
	input := textinput.New()
	input.Placeholder = "type your answer"
	input.CharLimit = 0
	model := promptModel{request: request, input: input}
	if len(request.PredefinedOptions) == 0 {
		model.input.Focus()
	}
	return model
}

// freeTextRow is the cursor position of the free-text input, one past the
// last predefined option.
func (model promptModel) freeTextRow() int {
	return len(model.request.PredefinedOptions)
}

func (model promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (model promptModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := message.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		model.input, cmd = model.input.Update(message)
		return model, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		model.cancelled = true
		model.done = true
		return model, tea.Quit
	case "up":
		if model.cursor > 0 {
			model.cursor--
			model.syncFocus()
		}
		return model, nil
	case "down":
		if model.cursor < model.freeTextRow() {
			model.cursor++
			model.syncFocus()
		}
		return model, nil
	case "enter":
		if model.cursor < model.freeTextRow() {
			model.answer = model.request.PredefinedOptions[model.cursor]
			model.done = true
			return model, tea.Quit
		}
		typed := strings.TrimSpace(model.input.Value())
		if typed == "" {
			return model, nil
		}
		model.answer = typed
		model.done = true
		return model, tea.Quit
	}

	if model.cursor == model.freeTextRow() {
		var cmd tea.Cmd
		model.input, cmd = model.input.Update(message)
		return model, cmd
	}
	return model, nil
}

func (model promptModel) View() string {
	if model.done {
		return ""
	}

	var view strings.Builder
	view.WriteString(titleStyle.Render(model.request.Message))
	view.WriteString("\n")

	for index, option := range model.request.PredefinedOptions {
		if index == model.cursor {
			view.WriteString(selectedStyle.String() + option)
		} else {
			view.WriteString(optionStyle.Render(option))
		}
		view.WriteString("\n")
	}

	if model.cursor == model.freeTextRow() {
		view.WriteString(selectedStyle.String() + model.input.View())
	} else {
		view.WriteString(optionStyle.Render(model.input.View()))
	}
	view.WriteString("\n")
	view.WriteString(helpStyle.Render("enter submit · up/down move · esc cancel"))
	view.WriteString("\n")
	return view.String()
}

func (model *promptModel) syncFocus() {
	if model.cursor == model.freeTextRow() {
		model.input.Focus()
		return
	}
	model.input.Blur()
}

// runPrompt runs the interactive prompt for request, rendering on output.
// It returns the chosen answer, or cancelled=true when the user dismissed
// the prompt.
func runPrompt(request promptrelay.Request, output io.Writer) (answer string, cancelled bool, err error) {
	program := tea.NewProgram(newPromptModel(request), tea.WithOutput(output))
	finalModel, err := program.Run()
	if err != nil {
		return "", false, fmt.Errorf("run prompt: %w", err)
	}
	model := finalModel.(promptModel)
	return model.answer, model.cancelled, nil
}

package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"promptrelay"
)

func press(t *testing.T, model promptModel, key string) promptModel {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, _ := model.Update(msg)
	return updated.(promptModel)
}

func TestEnterSelectsHighlightedOption(t *testing.T) {
	model := newPromptModel(promptrelay.Request{
		Message:           "Continue?",
		PredefinedOptions: []string{"Yes", "No"},
	})

	model = press(t, model, "down")
	model = press(t, model, "enter")

	if !model.done || model.cancelled {
		t.Fatalf("expected a completed selection, got %+v", model)
	}
	if model.answer != "No" {
		t.Fatalf("unexpected answer: %q", model.answer)
	}
}

func TestEscCancelsPrompt(t *testing.T) {
	model := newPromptModel(promptrelay.Request{Message: "Continue?"})

	model = press(t, model, "esc")

	if !model.cancelled {
		t.Fatal("expected cancellation")
	}
}

func TestFreeTextAnswerIsTrimmedAndRequired(t *testing.T) {
	model := newPromptModel(promptrelay.Request{Message: "Name?"})

	// Empty input does not submit.
	model = press(t, model, "enter")
	if model.done {
		t.Fatal("empty free-text answer must not submit")
	}

	model = press(t, model, "hi")
	model = press(t, model, "enter")
	if !model.done || model.answer != "hi" {
		t.Fatalf("unexpected state: %+v", model)
	}
}

func TestOptionsPromptCanReachFreeTextRow(t *testing.T) {
	model := newPromptModel(promptrelay.Request{
		Message:           "Pick or type",
		PredefinedOptions: []string{"a"},
	})

	model = press(t, model, "down") // move to the free-text row
	model = press(t, model, "x")
	model = press(t, model, "enter")

	if model.answer != "x" {
		t.Fatalf("unexpected answer: %q", model.answer)
	}
}

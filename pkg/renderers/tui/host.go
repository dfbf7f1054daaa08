package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-enhancers/pkg/combobox"
)

// Host runs combobox sessions in the terminal.
type Host struct {
	driver         PromptDriver
	keys           KeyMap
	styles         Styles
	messages       combobox.Messages
	programOptions []tea.ProgramOption
}

// New returns a Host using the survey driver and default keys and styles.
func New(options ...Option) *Host {
	h := &Host{
		keys:     DefaultKeyMap,
		styles:   DefaultStyles(),
		messages: combobox.DefaultMessages(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	if h.driver == nil {
		h.driver = NewSurveyDriver()
	}
	return h
}

// Choose asks the user to pick one of titles and returns its index.
func (h *Host) Choose(ctx context.Context, message string, titles []string) (int, error) {
	if len(titles) == 0 {
		return -1, ErrNoChoices
	}
	idx, err := h.driver.Select(ctx, SelectConfig{Message: message, Options: titles})
	if err != nil {
		return -1, err
	}
	if idx < 0 || idx >= len(titles) {
		return -1, fmt.Errorf("tui: choice %d out of range", idx)
	}
	return idx, nil
}

// Run shows an interactive combobox over source until the user accepts or
// aborts, and returns the committed value.
func (h *Host) Run(ctx context.Context, label string, source combobox.Source) (string, error) {
	model, err := NewModel(label, source, h.keys, h.styles, h.messages)
	if err != nil {
		return "", err
	}

	options := append([]tea.ProgramOption{tea.WithContext(ctx)}, h.programOptions...)
	final, err := tea.NewProgram(model, options...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || ctx.Err() != nil {
			return "", ErrAborted
		}
		return "", fmt.Errorf("tui: run: %w", err)
	}

	result, ok := final.(*Model)
	if !ok {
		return "", fmt.Errorf("tui: unexpected model %T", final)
	}
	if result.Aborted() {
		return "", ErrAborted
	}
	if result.Err() != nil {
		return "", result.Err()
	}
	value, _ := result.Value()
	return value, nil
}

// Session picks a control, runs the combobox for it and reports the result
// through the prompt driver, repeating while the user confirms.
func (h *Host) Session(ctx context.Context, labels []string, sources []combobox.Source) (map[string]string, error) {
	if len(labels) != len(sources) {
		return nil, errors.New("tui: labels and sources differ in length")
	}
	results := make(map[string]string)
	for {
		idx, err := h.Choose(ctx, "Choose a field", labels)
		if err != nil {
			return results, err
		}
		value, err := h.Run(ctx, labels[idx], sources[idx])
		if err != nil {
			return results, err
		}
		results[labels[idx]] = value
		if err := h.driver.Info(ctx, fmt.Sprintf("%s = %q", labels[idx], value)); err != nil {
			return results, err
		}
		again, err := h.driver.Confirm(ctx, ConfirmConfig{Message: "Edit another field?"})
		if err != nil {
			return results, err
		}
		if !again {
			return results, nil
		}
	}
}

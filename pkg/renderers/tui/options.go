package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-enhancers/pkg/combobox"
)

// Option configures the Host.
type Option func(*Host)

// WithPromptDriver overrides the prompt driver used for line prompts.
func WithPromptDriver(driver PromptDriver) Option {
	return func(h *Host) {
		if driver != nil {
			h.driver = driver
		}
	}
}

// WithKeyMap replaces the key bindings.
func WithKeyMap(keys KeyMap) Option {
	return func(h *Host) {
		h.keys = keys
	}
}

// WithStyles replaces the styles.
func WithStyles(styles Styles) Option {
	return func(h *Host) {
		h.styles = styles
	}
}

// WithMessages overrides the status and empty-row texts.
func WithMessages(messages combobox.Messages) Option {
	return func(h *Host) {
		h.messages = messages
	}
}

// WithProgramOptions forwards options to the bubbletea program, for example
// tea.WithInput and tea.WithOutput.
func WithProgramOptions(options ...tea.ProgramOption) Option {
	return func(h *Host) {
		h.programOptions = append(h.programOptions, options...)
	}
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-enhancers/pkg/combobox"
)

// Model is a bubbletea model hosting one combobox. It is the controller's
// surface: effects update the fields View draws from.
type Model struct {
	label     string
	keys      KeyMap
	styles    Styles
	announcer combobox.Announcer

	input        textinput.Model
	inputFocused bool
	controller   *combobox.Controller

	open     bool
	rows     []combobox.Option
	selected string
	focused  int
	status   string

	done    bool
	aborted bool
	err     error
}

var (
	_ tea.Model        = (*Model)(nil)
	_ combobox.Surface = (*Model)(nil)
)

// NewModel builds a focused combobox over source.
func NewModel(label string, source combobox.Source, keys KeyMap, styles Styles, messages combobox.Messages) (*Model, error) {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 128
	ti.Focus()

	m := &Model{
		label:     label,
		keys:      keys,
		styles:    styles,
		announcer: combobox.NewAnnouncer(messages),
		input:     ti,
		focused:   combobox.NoOption,
	}
	controller, err := combobox.NewController(source, m)
	if err != nil {
		return nil, err
	}
	m.controller = controller
	if source.Disabled() {
		m.input.Blur()
		return m, nil
	}
	m.inputFocused = true
	m.dispatch(combobox.Focus{})
	return m, nil
}

// Apply implements combobox.Surface.
func (m *Model) Apply(effect combobox.Effect) error {
	switch eff := effect.(type) {
	case combobox.SetInputText:
		m.input.SetValue(eff.Text)
		m.input.CursorEnd()
	case combobox.SetExpanded:
		m.open = eff.Open
		if !eff.Open {
			m.focused = combobox.NoOption
		}
	case combobox.RenderOptions:
		m.rows = eff.Options
		m.selected = eff.Selected
		m.focused = combobox.NoOption
	case combobox.Announce:
		m.status = m.announcer.Announce(eff.Count)
	case combobox.FocusInput:
		m.focused = combobox.NoOption
		m.inputFocused = true
	case combobox.FocusOption:
		m.focused = eff.Index
	default:
		return fmt.Errorf("tui: unsupported effect %T", effect)
	}
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Done):
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Leave):
		m.inputFocused = false
		m.dispatch(combobox.ClickOutside{})
		return m, nil
	}

	if !m.inputFocused {
		m.inputFocused = true
		m.dispatch(combobox.Focus{})
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		m.dispatch(combobox.KeyDown{Key: combobox.KeyArrowDown})
	case key.Matches(keyMsg, m.keys.Up):
		m.dispatch(combobox.KeyDown{Key: combobox.KeyArrowUp})
	case key.Matches(keyMsg, m.keys.Commit):
		m.dispatch(combobox.KeyDown{Key: combobox.KeyEnter})
	case key.Matches(keyMsg, m.keys.Close):
		m.dispatch(combobox.KeyDown{Key: combobox.KeyEscape})
	case key.Matches(keyMsg, m.keys.Clear):
		m.dispatch(combobox.Clear{})
	default:
		if m.focused != combobox.NoOption {
			return m, nil
		}
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if after := m.input.Value(); after != before {
			m.dispatch(combobox.Input{Text: after})
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	if m.label != "" {
		b.WriteString(m.styles.Label.Render(m.label))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.open {
		if len(m.rows) == 0 {
			b.WriteString(m.styles.Empty.Render(m.announcer.Messages().Empty))
			b.WriteString("\n")
		}
		for idx, row := range m.rows {
			text := row.Label
			style := m.styles.Option
			if row.Value == m.selected {
				text += " ✓"
				style = m.styles.Selected
			}
			if idx == m.focused {
				style = m.styles.Focused
			}
			b.WriteString(style.Render(text))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render(helpLine(m.keys)))
	return b.String()
}

// Value reports the committed value of the control.
func (m *Model) Value() (string, bool) {
	return m.controller.Source().SelectedValue()
}

// Open reports whether the option list is shown.
func (m *Model) Open() bool {
	return m.open
}

// Rows returns the currently rendered options.
func (m *Model) Rows() []combobox.Option {
	return append([]combobox.Option(nil), m.rows...)
}

// FocusedIndex returns the option under the cursor, or combobox.NoOption.
func (m *Model) FocusedIndex() int {
	return m.focused
}

// InputText returns the filter input text.
func (m *Model) InputText() string {
	return m.input.Value()
}

// Status returns the last announcement.
func (m *Model) Status() string {
	return m.status
}

// Aborted reports whether the user quit without accepting.
func (m *Model) Aborted() bool {
	return m.aborted
}

// Err returns the first controller error.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) dispatch(event combobox.Event) {
	if err := m.controller.Dispatch(event); err != nil && m.err == nil {
		m.err = err
	}
}

func helpLine(keys KeyMap) string {
	parts := make([]string, 0, 8)
	for _, binding := range keys.help() {
		h := binding.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

package combobox

import "sync"

// Source is the native selection control the widget enhances. It owns the
// committed value; the controller is its only writer.
type Source interface {
	// Options returns the live option list, placeholders included, with
	// Selected derived from the current value.
	Options() []Option
	// SelectedValue reports the committed value, if any.
	SelectedValue() (string, bool)
	// SetSelectedValue commits value. Unknown or disabled values are ignored;
	// the empty string always selects the placeholder (or nothing).
	SetSelectedValue(value string)
	// NotifyChange fires the control's change notification.
	NotifyChange()
	// Disabled reports whether the control is disabled.
	Disabled() bool
}

// ChangeListener receives the committed value after each change notification.
type ChangeListener func(value string)

// StaticSource is an in-memory Source used by non-DOM hosts and tests.
type StaticSource struct {
	mu        sync.RWMutex
	options   []Option
	selected  int
	disabled  bool
	listeners []ChangeListener
}

// StaticOption configures a StaticSource.
type StaticOption func(*StaticSource)

// WithSelected preselects the first option whose value matches. Disabled
// options may be preselected, which is how placeholders are expressed.
func WithSelected(value string) StaticOption {
	return func(s *StaticSource) {
		for idx, option := range s.options {
			if option.Value == value {
				s.selected = idx
				return
			}
		}
	}
}

// WithDisabled marks the control disabled.
func WithDisabled(disabled bool) StaticOption {
	return func(s *StaticSource) {
		s.disabled = disabled
	}
}

// NewStaticSource copies options. Without WithSelected the first enabled
// option is selected, mirroring a native single select.
func NewStaticSource(options []Option, opts ...StaticOption) *StaticSource {
	source := &StaticSource{
		options:  make([]Option, len(options)),
		selected: -1,
	}
	for idx, option := range options {
		option.Selected = false
		source.options[idx] = option
	}
	for idx, option := range source.options {
		if !option.Disabled {
			source.selected = idx
			break
		}
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(source)
	}
	return source
}

// Options implements Source.
func (s *StaticSource) Options() []Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Option, len(s.options))
	for idx, option := range s.options {
		option.Selected = idx == s.selected
		out[idx] = option
	}
	return out
}

// SelectedValue implements Source.
func (s *StaticSource) SelectedValue() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected < 0 || s.selected >= len(s.options) {
		return "", false
	}
	return s.options[s.selected].Value, true
}

// SetSelectedValue implements Source.
func (s *StaticSource) SetSelectedValue(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		s.selected = -1
		for idx, option := range s.options {
			if option.Value == "" {
				s.selected = idx
				break
			}
		}
		return
	}
	for idx, option := range s.options {
		if option.Value == value && !option.Disabled {
			s.selected = idx
			return
		}
	}
}

// NotifyChange implements Source.
func (s *StaticSource) NotifyChange() {
	value, _ := s.SelectedValue()
	s.mu.RLock()
	listeners := append([]ChangeListener(nil), s.listeners...)
	s.mu.RUnlock()
	for _, listener := range listeners {
		listener(value)
	}
}

// Disabled implements Source.
func (s *StaticSource) Disabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.disabled
}

// OnChange registers a listener fired by NotifyChange.
func (s *StaticSource) OnChange(listener ChangeListener) {
	if listener == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// SetOptions replaces the option list, keeping the selection when the value
// still exists.
func (s *StaticSource) SetOptions(options []Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := ""
	if s.selected >= 0 && s.selected < len(s.options) {
		current = s.options[s.selected].Value
	}
	s.options = make([]Option, len(options))
	s.selected = -1
	for idx, option := range options {
		option.Selected = false
		s.options[idx] = option
		if s.selected == -1 && option.Value == current {
			s.selected = idx
		}
	}
}

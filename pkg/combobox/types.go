package combobox

// NoOption marks State.FocusedIndex when the filter input, not an option,
// holds keyboard focus.
const NoOption = -1

// Option is one entry of the native control. Selected is derived from the
// control's current value and is informational only.
type Option struct {
	Value    string `json:"value" yaml:"value"`
	Label    string `json:"label" yaml:"label"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Selected bool   `json:"selected,omitempty" yaml:"selected,omitempty"`
}

// State is the complete combobox state. Filtered is always recomputed from
// Query, never patched.
type State struct {
	Open         bool
	Query        string
	Filtered     []Option
	FocusedIndex int
	Disabled     bool
}

// FocusedOption returns the option under the keyboard cursor, if any.
func (s State) FocusedOption() (Option, bool) {
	if s.FocusedIndex < 0 || s.FocusedIndex >= len(s.Filtered) {
		return Option{}, false
	}
	return s.Filtered[s.FocusedIndex], true
}

// Clone returns a copy that does not share the Filtered backing array.
func (s State) Clone() State {
	out := s
	if s.Filtered != nil {
		out.Filtered = append([]Option(nil), s.Filtered...)
	}
	return out
}

func findOption(options []Option, value string) (Option, bool) {
	for _, option := range options {
		if option.Value == value {
			return option, true
		}
	}
	return Option{}, false
}

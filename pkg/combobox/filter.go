package combobox

import "strings"

// Filter returns the options whose label contains query, ignoring case.
// Disabled options are dropped regardless of query, an empty (or blank) query
// keeps every enabled option, and the original order is preserved.
func Filter(options []Option, query string) []Option {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]Option, 0, len(options))
	for _, option := range options {
		if option.Disabled {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(option.Label), needle) {
			continue
		}
		out = append(out, option)
	}
	return out
}

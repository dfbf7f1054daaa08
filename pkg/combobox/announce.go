package combobox

import (
	"fmt"
	"strings"
)

// Messages holds the user-facing strings of the widget. Singular and Plural are
// fmt patterns receiving the result count.
type Messages struct {
	Singular string `json:"singular" yaml:"singular"`
	Plural   string `json:"plural" yaml:"plural"`
	Empty    string `json:"empty" yaml:"empty"`
	Clear    string `json:"clear" yaml:"clear"`
}

// DefaultMessages returns the English strings.
func DefaultMessages() Messages {
	return Messages{
		Singular: "%d option",
		Plural:   "%d options",
		Empty:    "No options",
		Clear:    "Clear",
	}
}

// withDefaults fills blank fields from DefaultMessages.
func (m Messages) withDefaults() Messages {
	defaults := DefaultMessages()
	if strings.TrimSpace(m.Singular) == "" {
		m.Singular = defaults.Singular
	}
	if strings.TrimSpace(m.Plural) == "" {
		m.Plural = defaults.Plural
	}
	if strings.TrimSpace(m.Empty) == "" {
		m.Empty = defaults.Empty
	}
	if strings.TrimSpace(m.Clear) == "" {
		m.Clear = defaults.Clear
	}
	return m
}

// Announcer projects a result count onto the live-region text. The zero value
// uses DefaultMessages.
type Announcer struct {
	messages Messages
}

// NewAnnouncer fills any blank message with its default.
func NewAnnouncer(messages Messages) Announcer {
	return Announcer{messages: messages.withDefaults()}
}

// Announce returns the singular form for exactly one result and the plural
// form for everything else, zero included.
func (a Announcer) Announce(count int) string {
	messages := a.Messages()
	if count == 1 {
		return fmt.Sprintf(messages.Singular, count)
	}
	return fmt.Sprintf(messages.Plural, count)
}

// Messages exposes the resolved strings.
func (a Announcer) Messages() Messages {
	return a.messages.withDefaults()
}

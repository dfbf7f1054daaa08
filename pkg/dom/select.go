package dom

import (
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/goliatone/go-enhancers/pkg/combobox"
)

// SelectAdapter exposes a <select> element as a combobox.Source. The selected
// option is stored in the markup through the selected attribute so that
// rendering the document reflects the committed value.
type SelectAdapter struct {
	doc  *Document
	node *html.Node

	mu sync.Mutex
}

var _ combobox.Source = (*SelectAdapter)(nil)

// NewSelectAdapter wraps node, which must be a select element.
func NewSelectAdapter(doc *Document, node *html.Node) (*SelectAdapter, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if !IsElement(node, "select") {
		return nil, ErrNotSelect
	}
	return &SelectAdapter{doc: doc, node: node}, nil
}

// Node returns the wrapped select element.
func (a *SelectAdapter) Node() *html.Node {
	return a.node
}

// Placeholder returns data-placeholder, falling back to placeholder.
func (a *SelectAdapter) Placeholder() string {
	if value, ok := Attr(a.node, "data-placeholder"); ok {
		return value
	}
	return AttrOr(a.node, "placeholder", "")
}

// Options implements combobox.Source.
func (a *SelectAdapter) Options() []combobox.Option {
	a.mu.Lock()
	defer a.mu.Unlock()

	nodes := a.optionNodes()
	selected := a.selectedIndex(nodes)
	out := make([]combobox.Option, len(nodes))
	for idx, node := range nodes {
		out[idx] = combobox.Option{
			Value:    optionValue(node),
			Label:    optionLabel(node),
			Disabled: optionDisabled(node),
			Selected: idx == selected,
		}
	}
	return out
}

// SelectedValue implements combobox.Source.
func (a *SelectAdapter) SelectedValue() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	nodes := a.optionNodes()
	idx := a.selectedIndex(nodes)
	if idx < 0 {
		return "", false
	}
	return optionValue(nodes[idx]), true
}

// SetSelectedValue implements combobox.Source. The empty value selects an
// option whose value is empty (typically the disabled placeholder). A control
// without one gets a hidden empty option appended, so the rendered markup and
// a submitted form both carry the cleared value.
func (a *SelectAdapter) SetSelectedValue(value string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	nodes := a.optionNodes()
	target := -1
	for idx, node := range nodes {
		if optionValue(node) != value {
			continue
		}
		if value != "" && optionDisabled(node) {
			continue
		}
		target = idx
		break
	}
	if target < 0 {
		if value != "" {
			return
		}
		empty := NewElement("option",
			html.Attribute{Key: "value", Val: ""},
			html.Attribute{Key: "hidden", Val: ""},
		)
		a.node.AppendChild(empty)
		nodes = append(nodes, empty)
		target = len(nodes) - 1
	}

	for _, node := range nodes {
		RemoveAttr(node, "selected")
	}
	SetAttr(nodes[target], "selected", "")
}

// NotifyChange implements combobox.Source by dispatching a bubbling change
// event on the select element.
func (a *SelectAdapter) NotifyChange() {
	a.doc.Dispatch(a.node, Event{Type: EventChange, Bubbles: true})
}

// Disabled implements combobox.Source.
func (a *SelectAdapter) Disabled() bool {
	return HasAttr(a.node, "disabled")
}

func (a *SelectAdapter) optionNodes() []*html.Node {
	var out []*html.Node
	for child := a.node.FirstChild; child != nil; child = child.NextSibling {
		switch {
		case IsElement(child, "option"):
			out = append(out, child)
		case IsElement(child, "optgroup"):
			for nested := child.FirstChild; nested != nil; nested = nested.NextSibling {
				if IsElement(nested, "option") {
					out = append(out, nested)
				}
			}
		}
	}
	return out
}

// selectedIndex follows the browser rule for single selects: the last option
// carrying the selected attribute wins, otherwise the first enabled option.
func (a *SelectAdapter) selectedIndex(nodes []*html.Node) int {
	selected := -1
	for idx, node := range nodes {
		if HasAttr(node, "selected") {
			selected = idx
		}
	}
	if selected >= 0 {
		return selected
	}
	for idx, node := range nodes {
		if !optionDisabled(node) {
			return idx
		}
	}
	return -1
}

func optionValue(node *html.Node) string {
	if value, ok := Attr(node, "value"); ok {
		return value
	}
	return optionLabel(node)
}

func optionLabel(node *html.Node) string {
	return strings.Join(strings.Fields(TextContent(node)), " ")
}

func optionDisabled(node *html.Node) bool {
	if HasAttr(node, "disabled") || HasAttr(node, "hidden") {
		return true
	}
	parent := node.Parent
	return IsElement(parent, "optgroup") && HasAttr(parent, "disabled")
}

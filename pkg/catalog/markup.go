package catalog

import (
	"fmt"
	"io"

	"golang.org/x/net/html"

	"github.com/goliatone/go-enhancers/pkg/dom"
)

// EnhanceAttr marks a select for the searchable-select enhancer.
const EnhanceAttr = "data-enhance"

// SelectNode builds the native control for c: a select marked for
// enhancement with a disabled placeholder option first when one is set.
func (c Catalog) SelectNode() *html.Node {
	sel := dom.NewElement("select",
		html.Attribute{Key: "id", Val: c.ID},
		html.Attribute{Key: "name", Val: c.Name},
		html.Attribute{Key: EnhanceAttr, Val: "searchable-select"},
	)
	if c.Placeholder != "" {
		dom.SetAttr(sel, "data-placeholder", c.Placeholder)
	}
	if c.Disabled {
		dom.SetAttr(sel, "disabled", "")
	}

	_, hasSelection := findValue(c.Options, c.Selected)
	if c.Placeholder != "" {
		placeholder := dom.NewElement("option",
			html.Attribute{Key: "value", Val: ""},
			html.Attribute{Key: "disabled", Val: ""},
		)
		if !hasSelection {
			dom.SetAttr(placeholder, "selected", "")
		}
		dom.SetTextContent(placeholder, c.Placeholder)
		sel.AppendChild(placeholder)
	}

	for _, option := range c.Options {
		node := dom.NewElement("option", html.Attribute{Key: "value", Val: option.Value})
		if option.Disabled {
			dom.SetAttr(node, "disabled", "")
		}
		if hasSelection && option.Value == c.Selected {
			dom.SetAttr(node, "selected", "")
		}
		dom.SetTextContent(node, option.Label)
		sel.AppendChild(node)
	}
	return sel
}

// FieldNode wraps the select in a field container with its label.
func (c Catalog) FieldNode() *html.Node {
	field := dom.NewElement("div", html.Attribute{Key: "class", Val: "field"})
	if c.Label != "" {
		label := dom.NewElement("label", html.Attribute{Key: "for", Val: c.ID})
		dom.SetTextContent(label, c.Label)
		field.AppendChild(label)
	}
	field.AppendChild(c.SelectNode())
	return field
}

// Render writes the field markup for c.
func (c Catalog) Render(w io.Writer) error {
	if err := html.Render(w, c.FieldNode()); err != nil {
		return fmt.Errorf("catalog: render %s: %w", c.ID, err)
	}
	return nil
}

package enhance

import (
	"golang.org/x/net/html"

	"github.com/goliatone/go-enhancers/pkg/dom"
)

// The methods below simulate user input by dispatching DOM events on the
// widget nodes, the same way a browser would deliver them. Server-side and
// test hosts use them to drive a widget.

// FocusInput focuses the filter input.
func (w *Widget) FocusInput() {
	w.doc.Focus(w.input)
	w.doc.Dispatch(w.input, dom.Event{Type: dom.EventFocus})
}

// Type replaces the filter text and fires an input event.
func (w *Widget) Type(text string) {
	dom.SetAttr(w.input, "value", text)
	w.doc.Dispatch(w.input, dom.Event{Type: dom.EventInput, Bubbles: true})
}

// Press delivers a keydown to the focused widget node, falling back to the
// filter input when focus is elsewhere.
func (w *Widget) Press(key string) {
	target := w.doc.ActiveElement()
	if target == nil || !dom.Contains(w.wrapper, target) {
		target = w.input
	}
	w.doc.Dispatch(target, dom.Event{Type: dom.EventKeyDown, Key: key, Bubbles: true})
}

// ClickOption clicks the rendered row for value. It reports false when no
// such row is visible.
func (w *Widget) ClickOption(value string) bool {
	row := w.OptionNode(value)
	if row == nil {
		return false
	}
	Click(w.doc, row)
	return true
}

// ClickClear clicks the clear affordance.
func (w *Widget) ClickClear() {
	Click(w.doc, w.clear)
}

// Click dispatches a bubbling click on target.
func Click(doc *dom.Document, target *html.Node) {
	doc.Dispatch(target, dom.Event{Type: dom.EventClick, Bubbles: true})
}

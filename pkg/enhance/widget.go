package enhance

import (
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/net/html"

	"github.com/goliatone/go-enhancers/pkg/combobox"
	"github.com/goliatone/go-enhancers/pkg/dom"
)

const (
	classInput    = "ss-input"
	classClear    = "ss-clear"
	classOptions  = "ss-options"
	classOption   = "ss-option"
	classEmpty    = "ss-empty"
	classNative   = "ss-native"
	classOpen     = "open"
	classSelected = "selected"
	classFocused  = "focused"

	markerAttr  = "data-enhanced"
	markerValue = "1"

	nativeStyle = "position: absolute; opacity: 0; pointer-events: none; height: 0; width: 0;"
)

// Widget is the rendered combobox for one native select. It implements
// combobox.Surface by mutating its own nodes.
type Widget struct {
	doc       *dom.Document
	adapter   *dom.SelectAdapter
	announcer combobox.Announcer
	logger    *slog.Logger

	wrapper *html.Node
	input   *html.Node
	clear   *html.Node
	listbox *html.Node
	status  *html.Node
	rows    []*html.Node

	controller *combobox.Controller
	subs       []dom.Subscription
	native     nativeState
}

var _ combobox.Surface = (*Widget)(nil)

// nativeState records the native attributes the widget overrides.
type nativeState struct {
	style    *string
	tabindex *string
	hidden   *string
}

func locateCollaborators(wrapper *html.Node) (input, clearButton, listbox, status *html.Node, err error) {
	input = dom.Find(wrapper, dom.WithClass("input", classInput))
	clearButton = dom.Find(wrapper, dom.WithClass("", classClear))
	listbox = dom.Find(wrapper, dom.WithAttr("", "role", "listbox"))
	status = dom.Find(wrapper, dom.WithAttr("", "aria-live", "polite"))

	var missing string
	switch {
	case input == nil:
		missing = "input"
	case clearButton == nil:
		missing = "clear"
	case listbox == nil:
		missing = "listbox"
	case status == nil:
		missing = "status"
	}
	if missing != "" {
		return nil, nil, nil, nil, fmt.Errorf("%w: %s", ErrMissingCollaborator, missing)
	}
	return input, clearButton, listbox, status, nil
}

// Controller exposes the widget's state machine.
func (w *Widget) Controller() *combobox.Controller {
	return w.controller
}

// Adapter exposes the native control.
func (w *Widget) Adapter() *dom.SelectAdapter {
	return w.adapter
}

// Wrapper returns the widget root element.
func (w *Widget) Wrapper() *html.Node {
	return w.wrapper
}

// Input returns the filter input element.
func (w *Widget) Input() *html.Node {
	return w.input
}

// Listbox returns the options panel element.
func (w *Widget) Listbox() *html.Node {
	return w.listbox
}

// ClearButton returns the clear affordance.
func (w *Widget) ClearButton() *html.Node {
	return w.clear
}

// Status returns the live region.
func (w *Widget) Status() *html.Node {
	return w.status
}

// OptionNode returns the rendered row for value, if visible.
func (w *Widget) OptionNode(value string) *html.Node {
	for _, row := range w.rows {
		if dom.AttrOr(row, "data-value", "") == value {
			return row
		}
	}
	return nil
}

// Apply implements combobox.Surface.
func (w *Widget) Apply(effect combobox.Effect) error {
	switch eff := effect.(type) {
	case combobox.SetInputText:
		dom.SetAttr(w.input, "value", eff.Text)
	case combobox.SetExpanded:
		dom.ToggleClass(w.wrapper, classOpen, eff.Open)
		dom.ToggleAttr(w.listbox, "hidden", !eff.Open)
		dom.SetAttr(w.input, "aria-expanded", strconv.FormatBool(eff.Open))
		if !eff.Open {
			w.clearActiveDescendant()
		}
	case combobox.RenderOptions:
		w.renderOptions(eff)
	case combobox.Announce:
		dom.SetTextContent(w.status, w.announcer.Announce(eff.Count))
	case combobox.FocusInput:
		w.clearActiveDescendant()
		w.doc.Focus(w.input)
	case combobox.FocusOption:
		if eff.Index < 0 || eff.Index >= len(w.rows) {
			return fmt.Errorf("enhance: option index %d out of range", eff.Index)
		}
		w.clearActiveDescendant()
		row := w.rows[eff.Index]
		dom.AddClass(row, classFocused)
		dom.SetAttr(w.input, "aria-activedescendant", dom.AttrOr(row, "id", ""))
		w.doc.Focus(row)
	default:
		return fmt.Errorf("enhance: unsupported effect %T", effect)
	}
	return nil
}

func (w *Widget) renderOptions(eff combobox.RenderOptions) {
	w.clearActiveDescendant()
	dom.RemoveChildren(w.listbox)
	w.rows = w.rows[:0]

	if len(eff.Options) == 0 {
		empty := dom.NewElement("div",
			html.Attribute{Key: "class", Val: classEmpty},
			html.Attribute{Key: "role", Val: "presentation"},
		)
		dom.SetTextContent(empty, w.announcer.Messages().Empty)
		w.listbox.AppendChild(empty)
		return
	}

	listboxID := dom.AttrOr(w.listbox, "id", "ss-options")
	for idx, option := range eff.Options {
		selected := option.Value == eff.Selected
		row := dom.NewElement("div",
			html.Attribute{Key: "class", Val: classOption},
			html.Attribute{Key: "role", Val: "option"},
			html.Attribute{Key: "id", Val: fmt.Sprintf("%s-opt-%d", listboxID, idx)},
			html.Attribute{Key: "tabindex", Val: "-1"},
			html.Attribute{Key: "data-value", Val: option.Value},
			html.Attribute{Key: "aria-selected", Val: strconv.FormatBool(selected)},
		)
		dom.ToggleClass(row, classSelected, selected)
		dom.SetTextContent(row, option.Label)
		w.listbox.AppendChild(row)
		w.rows = append(w.rows, row)
	}
}

func (w *Widget) clearActiveDescendant() {
	dom.RemoveAttr(w.input, "aria-activedescendant")
	for _, row := range w.rows {
		dom.RemoveClass(row, classFocused)
	}
}

// bind subscribes the widget listeners. Every subscription is kept so that
// release detaches the widget from the document completely.
func (w *Widget) bind() {
	bus := w.doc.Events()
	w.subs = append(w.subs,
		bus.On(w.input, dom.EventFocus, func(*dom.Event, *html.Node) {
			w.dispatch(combobox.Focus{})
		}),
		bus.On(w.input, dom.EventInput, func(*dom.Event, *html.Node) {
			w.dispatch(combobox.Input{Text: dom.AttrOr(w.input, "value", "")})
		}),
		bus.On(w.input, dom.EventKeyDown, func(event *dom.Event, _ *html.Node) {
			w.dispatch(combobox.KeyDown{Key: combobox.Key(event.Key)})
		}),
		bus.On(w.listbox, dom.EventKeyDown, func(event *dom.Event, _ *html.Node) {
			if dom.Closest(event.Target, dom.WithClass("", classOption)) == nil {
				return
			}
			w.dispatch(combobox.KeyDown{Key: combobox.Key(event.Key)})
		}),
		bus.On(w.listbox, dom.EventClick, func(event *dom.Event, _ *html.Node) {
			row := dom.Closest(event.Target, dom.WithClass("", classOption))
			if row == nil {
				return
			}
			w.dispatch(combobox.ClickOption{Value: dom.AttrOr(row, "data-value", "")})
		}),
		bus.On(w.clear, dom.EventClick, func(*dom.Event, *html.Node) {
			w.dispatch(combobox.Clear{})
		}),
		bus.On(nil, dom.EventClick, func(event *dom.Event, _ *html.Node) {
			if dom.Contains(w.wrapper, event.Target) {
				return
			}
			w.dispatch(combobox.ClickOutside{})
		}),
	)
}

func (w *Widget) dispatch(event combobox.Event) {
	if w.controller == nil {
		return
	}
	if err := w.controller.Dispatch(event); err != nil {
		w.logger.Warn("searchable select event failed",
			slog.String("control", controlName(w.adapter.Node())),
			slog.String("event", fmt.Sprintf("%T", event)),
			slog.String("reason", err.Error()),
		)
	}
}

// suppressNative hides the native control and moves it into the wrapper.
func (w *Widget) suppressNative() {
	node := w.adapter.Node()
	w.native = nativeState{
		style:    attrPtr(node, "style"),
		tabindex: attrPtr(node, "tabindex"),
		hidden:   attrPtr(node, "aria-hidden"),
	}

	node.Parent.InsertBefore(w.wrapper, node)
	node.Parent.RemoveChild(node)
	w.wrapper.InsertBefore(node, w.wrapper.FirstChild)

	dom.AddClass(node, classNative)
	dom.SetAttr(node, "style", nativeStyle)
	dom.SetAttr(node, "tabindex", "-1")
	dom.SetAttr(node, "aria-hidden", "true")
	dom.SetAttr(node, markerAttr, markerValue)
}

// release detaches listeners and puts the native control back where it was.
func (w *Widget) release() {
	for _, sub := range w.subs {
		sub.Release()
	}
	w.subs = nil

	if active := w.doc.ActiveElement(); active != nil && dom.Contains(w.wrapper, active) {
		w.doc.Focus(nil)
	}

	node := w.adapter.Node()
	if w.wrapper.Parent != nil {
		dom.Detach(node)
		w.wrapper.Parent.InsertBefore(node, w.wrapper)
	}
	dom.Detach(w.wrapper)

	dom.RemoveClass(node, classNative)
	restoreAttr(node, "style", w.native.style)
	restoreAttr(node, "tabindex", w.native.tabindex)
	restoreAttr(node, "aria-hidden", w.native.hidden)
	dom.RemoveAttr(node, markerAttr)
}

func attrPtr(n *html.Node, key string) *string {
	value, ok := dom.Attr(n, key)
	if !ok {
		return nil
	}
	return &value
}

func restoreAttr(n *html.Node, key string, value *string) {
	if value == nil {
		dom.RemoveAttr(n, key)
		return
	}
	dom.SetAttr(n, key, *value)
}

func controlName(n *html.Node) string {
	if id := dom.AttrOr(n, "id", ""); id != "" {
		return id
	}
	return dom.AttrOr(n, "name", "")
}

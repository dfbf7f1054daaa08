// Package collapse toggles .collapsible sections through their
// .collapse-toggle button, keeping aria-expanded and the button label in sync.
package collapse

import (
	"strconv"
	"sync"

	"golang.org/x/net/html"

	"github.com/goliatone/go-enhancers/pkg/dom"
)

const (
	classSection   = "collapsible"
	classToggle    = "collapse-toggle"
	classContent   = "collapse-content"
	classCollapsed = "collapsed"

	// IDPrefix names content regions that had no id.
	IDPrefix = "collapse-section"
)

// Labels are the texts written into the toggle's span.
type Labels struct {
	Collapse string
	Expand   string
}

// DefaultLabels returns the English labels.
func DefaultLabels() Labels {
	return Labels{Collapse: "Collapse", Expand: "Expand"}
}

// Option configures a Toggler.
type Option func(*Toggler)

// WithLabels overrides the toggle labels. Blank labels keep their default.
func WithLabels(labels Labels) Option {
	return func(t *Toggler) {
		if labels.Collapse != "" {
			t.labels.Collapse = labels.Collapse
		}
		if labels.Expand != "" {
			t.labels.Expand = labels.Expand
		}
	}
}

// Toggler wires collapsible sections of one or more documents.
type Toggler struct {
	labels Labels

	mu   sync.Mutex
	subs []dom.Subscription
}

// New returns a Toggler.
func New(options ...Option) *Toggler {
	t := &Toggler{labels: DefaultLabels()}
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Attach listens for toggle clicks on doc and initializes the sections once
// the document is ready.
func (t *Toggler) Attach(doc *dom.Document) error {
	if doc == nil {
		return dom.ErrNilDocument
	}
	sub := doc.Events().On(nil, dom.EventClick, func(event *dom.Event, _ *html.Node) {
		button := dom.Closest(event.Target, dom.WithClass("", classToggle))
		if button == nil {
			return
		}
		section := dom.Closest(button, dom.WithClass("", classSection))
		if section == nil {
			return
		}
		t.Toggle(doc, section)
	})
	t.mu.Lock()
	t.subs = append(t.subs, sub)
	t.mu.Unlock()

	return doc.OnReady(func(d *dom.Document) error {
		t.Init(d)
		return nil
	})
}

// Init links every section's toggle to its content and syncs the ARIA state
// with the collapsed class.
func (t *Toggler) Init(doc *dom.Document) {
	for _, section := range dom.FindAll(doc.Root, dom.WithClass("", classSection)) {
		t.ensureControls(doc, section)
		t.sync(section, !dom.HasClass(section, classCollapsed))
	}
}

// Toggle flips section between collapsed and expanded.
func (t *Toggler) Toggle(doc *dom.Document, section *html.Node) {
	t.SetCollapsed(doc, section, !dom.HasClass(section, classCollapsed))
}

// SetCollapsed forces the collapsed state of section.
func (t *Toggler) SetCollapsed(doc *dom.Document, section *html.Node, collapsed bool) {
	t.ensureControls(doc, section)
	dom.ToggleClass(section, classCollapsed, collapsed)
	t.sync(section, !collapsed)
}

// Close releases the click listeners.
func (t *Toggler) Close() error {
	t.mu.Lock()
	subs := t.subs
	t.subs = nil
	t.mu.Unlock()
	for _, sub := range subs {
		sub.Release()
	}
	return nil
}

func (t *Toggler) ensureControls(doc *dom.Document, section *html.Node) {
	button := dom.Find(section, dom.WithClass("", classToggle))
	content := dom.Find(section, dom.WithClass("", classContent))
	if button == nil || content == nil {
		return
	}
	id := dom.AttrOr(content, "id", "")
	if id == "" {
		id = doc.NextID(IDPrefix)
		dom.SetAttr(content, "id", id)
	}
	dom.SetAttr(button, "aria-controls", id)
}

func (t *Toggler) sync(section *html.Node, expanded bool) {
	button := dom.Find(section, dom.WithClass("", classToggle))
	if button == nil {
		return
	}
	dom.SetAttr(button, "aria-expanded", strconv.FormatBool(expanded))
	if label := dom.Find(button, dom.Element("span")); label != nil {
		text := t.labels.Expand
		if expanded {
			text = t.labels.Collapse
		}
		dom.SetTextContent(label, text)
	}
}

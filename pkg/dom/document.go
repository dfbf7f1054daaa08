package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// ReadyFunc runs once when the document reaches its ready point.
type ReadyFunc func(doc *Document) error

// Document is a parsed page plus the runtime state browsers keep next to it.
type Document struct {
	Root *html.Node

	events *EventBus

	mu        sync.Mutex
	active    *html.Node
	ready     []ReadyFunc
	readyDone bool
	idSeq     int
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return NewDocument(root), nil
}

// ParseString is Parse over a string.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// NewDocument wraps an existing tree.
func NewDocument(root *html.Node) *Document {
	return &Document{
		Root:   root,
		events: NewEventBus(),
	}
}

// Events exposes the document event bus.
func (d *Document) Events() *EventBus {
	return d.events
}

// Dispatch delivers event to target and, when it bubbles, to its ancestors
// and the document-level listeners.
func (d *Document) Dispatch(target *html.Node, event Event) {
	event.Target = target
	d.events.Dispatch(event)
}

// OnReady registers fn for the ready point. Hooks registered after Ready has
// run execute immediately.
func (d *Document) OnReady(fn ReadyFunc) error {
	if fn == nil {
		return nil
	}
	d.mu.Lock()
	if d.readyDone {
		d.mu.Unlock()
		return fn(d)
	}
	d.ready = append(d.ready, fn)
	d.mu.Unlock()
	return nil
}

// Ready runs the registered hooks once, in registration order. Every hook runs
// even if an earlier one fails; the first error is returned.
func (d *Document) Ready() error {
	d.mu.Lock()
	if d.readyDone {
		d.mu.Unlock()
		return nil
	}
	d.readyDone = true
	hooks := d.ready
	d.ready = nil
	d.mu.Unlock()

	var firstErr error
	for _, hook := range hooks {
		if err := hook(d); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Focus moves the active element pointer. It does not dispatch focus events;
// hosts do that when the focus change is user initiated.
func (d *Document) Focus(n *html.Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active = n
}

// ActiveElement returns the focused node, if any.
func (d *Document) ActiveElement() *html.Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// NextID returns a document-unique identifier with prefix.
func (d *Document) NextID(prefix string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	for {
		d.idSeq++
		id := fmt.Sprintf("%s-%d", prefix, d.idSeq)
		if d.ElementByID(id) == nil {
			return id
		}
	}
}

// ElementByID returns the first element whose id attribute equals id.
func (d *Document) ElementByID(id string) *html.Node {
	if id == "" {
		return nil
	}
	return Find(d.Root, WithAttr("", "id", id))
}

// Body returns the body element, or the root when there is none.
func (d *Document) Body() *html.Node {
	if body := Find(d.Root, Element("body")); body != nil {
		return body
	}
	return d.Root
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	if d == nil || d.Root == nil {
		return ErrNilDocument
	}
	return html.Render(w, d.Root)
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// OuterHTML renders a single node.
func OuterHTML(n *html.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("dom: render node: %w", err)
	}
	return buf.String(), nil
}

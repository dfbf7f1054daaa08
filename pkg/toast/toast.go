// Package toast appends dismissible notifications to #toast-container and
// removes them after a fixed delay.
package toast

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/goliatone/go-enhancers/pkg/dom"
)

// Kinds understood by the stylesheet.
const (
	KindSuccess = "success"
	KindError   = "error"
)

const (
	// DefaultContainerID is the element toasts are appended to.
	DefaultContainerID = "toast-container"
	// DefaultTimeout is the auto-dismiss delay.
	DefaultTimeout = 6 * time.Second

	flashSuccessID = "flash-success"
	flashErrorID   = "flash-error"
)

// Timer is a pending dismissal.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithTimeout overrides the auto-dismiss delay. Non-positive values disable
// auto-dismiss.
func WithTimeout(d time.Duration) Option {
	return func(n *Notifier) {
		n.timeout = d
	}
}

// WithAfterFunc replaces the scheduler, mainly for tests.
func WithAfterFunc(fn AfterFunc) Option {
	return func(n *Notifier) {
		if fn != nil {
			n.after = fn
		}
	}
}

// WithContainerID changes the container element id.
func WithContainerID(id string) Option {
	return func(n *Notifier) {
		if id = strings.TrimSpace(id); id != "" {
			n.containerID = id
		}
	}
}

// WithCloseLabel sets the close button's accessible label.
func WithCloseLabel(label string) Option {
	return func(n *Notifier) {
		if label != "" {
			n.closeLabel = label
		}
	}
}

// Notifier creates toasts in one document.
type Notifier struct {
	doc         *dom.Document
	containerID string
	timeout     time.Duration
	after       AfterFunc
	closeLabel  string

	mu     sync.Mutex
	active map[*html.Node]*entry
}

type entry struct {
	timer Timer
	sub   dom.Subscription
}

// New returns a Notifier for doc.
func New(doc *dom.Document, options ...Option) *Notifier {
	n := &Notifier{
		doc:         doc,
		containerID: DefaultContainerID,
		timeout:     DefaultTimeout,
		after:       realAfterFunc,
		closeLabel:  "Close",
		active:      make(map[*html.Node]*entry),
	}
	for _, opt := range options {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

// Attach shows the flash messages once the document is ready.
func (n *Notifier) Attach() error {
	if n.doc == nil {
		return dom.ErrNilDocument
	}
	return n.doc.OnReady(func(*dom.Document) error {
		n.ShowFlash()
		return nil
	})
}

// Create appends a toast and returns it. It returns nil when the document has
// no container.
func (n *Notifier) Create(message, kind string) *html.Node {
	if n.doc == nil {
		return nil
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	container := n.doc.ElementByID(n.containerID)
	if container == nil {
		return nil
	}

	className := "toast"
	if kind = strings.TrimSpace(kind); kind != "" {
		className += " " + kind
	}
	toast := dom.NewElement("div", html.Attribute{Key: "class", Val: className}, html.Attribute{Key: "role", Val: "status"})
	msg := dom.NewElement("div", html.Attribute{Key: "class", Val: "msg"})
	dom.SetTextContent(msg, message)
	closeButton := dom.NewElement("button",
		html.Attribute{Key: "type", Val: "button"},
		html.Attribute{Key: "class", Val: "close"},
		html.Attribute{Key: "aria-label", Val: n.closeLabel},
	)
	dom.SetTextContent(closeButton, "×")
	toast.AppendChild(msg)
	toast.AppendChild(closeButton)
	container.AppendChild(toast)

	e := &entry{}
	e.sub = n.doc.Events().On(closeButton, dom.EventClick, func(*dom.Event, *html.Node) {
		n.Dismiss(toast)
	})
	if n.timeout > 0 {
		e.timer = n.after(n.timeout, func() { n.Dismiss(toast) })
	}
	n.active[toast] = e
	return toast
}

// Dismiss removes toast if it is still shown.
func (n *Notifier) Dismiss(toast *html.Node) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	e, ok := n.active[toast]
	if !ok {
		return false
	}
	delete(n.active, toast)
	if e.timer != nil {
		e.timer.Stop()
	}
	e.sub.Release()
	dom.Detach(toast)
	return true
}

// Active reports the number of toasts currently shown.
func (n *Notifier) Active() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.active)
}

// ShowFlash turns the #flash-success and #flash-error elements rendered by
// the server into toasts.
func (n *Notifier) ShowFlash() {
	if n.doc == nil {
		return
	}
	for _, flash := range []struct{ id, kind string }{
		{flashSuccessID, KindSuccess},
		{flashErrorID, KindError},
	} {
		node := n.doc.ElementByID(flash.id)
		if node == nil {
			continue
		}
		if text := strings.TrimSpace(dom.TextContent(node)); text != "" {
			n.Create(text, flash.kind)
		}
	}
}

// Close dismisses every toast.
func (n *Notifier) Close() error {
	n.mu.Lock()
	toasts := make([]*html.Node, 0, len(n.active))
	for toast := range n.active {
		toasts = append(toasts, toast)
	}
	n.mu.Unlock()
	for _, toast := range toasts {
		n.Dismiss(toast)
	}
	return nil
}

package dom

import (
	"sync"

	"golang.org/x/net/html"
)

// Event types the enhancers listen for.
const (
	EventClick   = "click"
	EventFocus   = "focus"
	EventBlur    = "blur"
	EventInput   = "input"
	EventKeyDown = "keydown"
	EventChange  = "change"
)

// Event is a synthetic DOM event. Target is filled by Document.Dispatch.
type Event struct {
	Type    string
	Target  *html.Node
	Key     string
	Bubbles bool

	stopped bool
}

// StopPropagation prevents delivery to further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Listener handles an event. current is the node the listener is bound to;
// nil for document-level listeners.
type Listener func(event *Event, current *html.Node)

// Subscription is a registered listener. Release is idempotent.
type Subscription interface {
	Release()
}

type subscription struct {
	bus *EventBus
	id  uint64
}

func (s *subscription) Release() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.remove(s.id)
}

type binding struct {
	id       uint64
	node     *html.Node
	typ      string
	listener Listener
}

// EventBus keeps listeners bound to nodes or to the document.
type EventBus struct {
	mu       sync.RWMutex
	seq      uint64
	bindings []binding
}

// NewEventBus returns an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// On binds listener to typ events on node. A nil node binds at document
// level, which sees every bubbling event.
func (b *EventBus) On(node *html.Node, typ string, listener Listener) Subscription {
	if listener == nil || typ == "" {
		return &subscription{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	b.bindings = append(b.bindings, binding{
		id:       b.seq,
		node:     node,
		typ:      typ,
		listener: listener,
	})
	return &subscription{bus: b, id: b.seq}
}

// Len reports the number of live listeners.
func (b *EventBus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.bindings)
}

// Dispatch delivers event to listeners on the target, then on each ancestor
// when Bubbles is set, then at document level. Listeners are snapshotted
// before delivery so handlers may subscribe or release freely.
func (b *EventBus) Dispatch(event Event) {
	b.mu.RLock()
	snapshot := make([]binding, 0, len(b.bindings))
	for _, bound := range b.bindings {
		if bound.typ == event.Type {
			snapshot = append(snapshot, bound)
		}
	}
	b.mu.RUnlock()
	if len(snapshot) == 0 {
		return
	}

	for node := event.Target; node != nil; node = node.Parent {
		for _, bound := range snapshot {
			if bound.node == node && b.live(bound.id) {
				bound.listener(&event, node)
			}
		}
		if !event.Bubbles || event.stopped {
			return
		}
	}
	for _, bound := range snapshot {
		if bound.node == nil && b.live(bound.id) {
			bound.listener(&event, nil)
		}
	}
}

func (b *EventBus) live(id uint64) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, bound := range b.bindings {
		if bound.id == id {
			return true
		}
	}
	return false
}

func (b *EventBus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for idx, bound := range b.bindings {
		if bound.id == id {
			b.bindings = append(b.bindings[:idx], b.bindings[idx+1:]...)
			return
		}
	}
}

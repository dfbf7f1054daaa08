package searchselect

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/goliatone/go-enhancers"
	"github.com/goliatone/go-enhancers/pkg/dom"
	"github.com/goliatone/go-enhancers/pkg/toast"
)

// session is one enhanced page. mu guards the document: every handler and
// every toast timer touching it holds the lock.
type session struct {
	id string

	mu        sync.Mutex
	doc       *dom.Document
	enhancers *enhancers.Enhancers
	changes   []string
	closed    bool
}

func newSession(markup string, options []enhancers.Option) (*session, error) {
	doc, err := dom.ParseString(markup)
	if err != nil {
		return nil, err
	}
	s := &session{id: uuid.NewString(), doc: doc}

	// Change listeners run inside a dispatch, so the lock is already held.
	doc.Events().On(nil, dom.EventChange, func(event *dom.Event, _ *html.Node) {
		s.changes = append(s.changes, controlID(event.Target))
	})

	options = append(append([]enhancers.Option{}, options...),
		enhancers.WithToastOptions(toast.WithAfterFunc(s.afterFunc)),
	)
	attached, err := enhancers.Attach(doc, options...)
	if err != nil {
		return nil, err
	}
	s.enhancers = attached
	if err := doc.Ready(); err != nil {
		_ = attached.Close()
		return nil, err
	}
	return s, nil
}

// afterFunc schedules toast dismissals under the session lock.
func (s *session) afterFunc(d time.Duration, f func()) toast.Timer {
	return time.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.closed {
			f()
		}
	})
}

// close must be called with mu held.
func (s *session) close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.enhancers.Close()
}

// values returns the selected value of every enhanced control.
func (s *session) values() map[string]string {
	out := make(map[string]string)
	for _, widget := range s.enhancers.Selects.Widgets() {
		adapter := widget.Adapter()
		value, _ := adapter.SelectedValue()
		out[controlID(adapter.Node())] = value
	}
	return out
}

func controlID(n *html.Node) string {
	if id := dom.AttrOr(n, "id", ""); id != "" {
		return id
	}
	return dom.AttrOr(n, "name", "")
}

// sessionStore keeps at most limit sessions, evicting the oldest first.
type sessionStore struct {
	mu       sync.Mutex
	limit    int
	sessions map[string]*session
	order    []string
}

func newSessionStore(limit int) *sessionStore {
	return &sessionStore{limit: limit, sessions: make(map[string]*session)}
}

func (st *sessionStore) add(s *session) {
	st.mu.Lock()
	var evicted []*session
	for len(st.order) >= st.limit {
		oldest := st.order[0]
		st.order = st.order[1:]
		if victim, ok := st.sessions[oldest]; ok {
			evicted = append(evicted, victim)
			delete(st.sessions, oldest)
		}
	}
	st.sessions[s.id] = s
	st.order = append(st.order, s.id)
	st.mu.Unlock()

	for _, victim := range evicted {
		victim.mu.Lock()
		_ = victim.close()
		victim.mu.Unlock()
	}
}

func (st *sessionStore) get(id string) (*session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *sessionStore) remove(id string) (*session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	delete(st.sessions, id)
	for idx, existing := range st.order {
		if existing == id {
			st.order = append(st.order[:idx], st.order[idx+1:]...)
			break
		}
	}
	return s, true
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

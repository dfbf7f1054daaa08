package searchselect

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goliatone/go-enhancers"
	"github.com/goliatone/go-enhancers/pkg/dom"
	"github.com/goliatone/go-enhancers/pkg/enhance"
	"github.com/goliatone/go-enhancers/pkg/render/template/gotemplate"
)

// Response headers set by the component.
const (
	HeaderSession = "X-Enhancers-Session"
	HeaderChange  = "X-Enhancers-Change"
	HeaderValue   = "X-Enhancers-Value"
)

// Event types accepted by the events route.
const (
	EventFocus        = "focus"
	EventInput        = "input"
	EventKeyDown      = "keydown"
	EventClickOption  = "click-option"
	EventClickOutside = "click-outside"
	EventClear        = "clear"
)

var (
	errUnknownSession = errors.New("searchselect: unknown session")
	errUnknownControl = errors.New("searchselect: unknown control")
	errUnknownEvent   = errors.New("searchselect: unknown event type")
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// EventRequest is the body of POST /{id}/events.
type EventRequest struct {
	Control string `json:"control"`
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Key     string `json:"key,omitempty"`
	Value   string `json:"value,omitempty"`
}

type valuesResponse struct {
	Session string            `json:"session"`
	Values  map[string]string `json:"values"`
	Changes []string          `json:"changes"`
}

// Handler builds a net/http handler with default options plus any overrides.
// It is an alias of NewHandler to match the recommended component API surface.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a handler serving requests under opts.RoutePath.
// Each handler owns its session store.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return newServer(opts, mountPath("", opts.RoutePath))
}

type server struct {
	opts      Options
	mount     string
	sessions  *sessionStore
	engine    *gotemplate.Engine
	engineErr error
	assets    http.Handler
}

func newServer(opts Options, mount string) *server {
	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS()))
	return &server{
		opts:      opts,
		mount:     strings.TrimRight(mount, "/"),
		sessions:  newSessionStore(opts.MaxSessions),
		engine:    engine,
		engineErr: err,
		assets:    http.StripPrefix(strings.TrimRight(mount, "/")+"/assets/", http.FileServerFS(enhancers.AssetsFS())),
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if s.opts.Guard != nil {
		if err := s.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
	}

	rest, ok := strings.CutPrefix(r.URL.Path, s.mount)
	if !ok || (rest != "" && !strings.HasPrefix(rest, "/")) {
		http.NotFound(w, r)
		return
	}
	segments := splitPath(rest)

	switch {
	case len(segments) == 0:
		s.allow(w, r, s.newPage, http.MethodGet, http.MethodHead)
	case segments[0] == "assets":
		s.allow(w, r, s.assets.ServeHTTP, http.MethodGet, http.MethodHead)
	case len(segments) == 1:
		id := segments[0]
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			s.withSession(w, id, func(sess *session) error { return s.page(w, r, sess) })
		case http.MethodDelete:
			s.closeSession(w, id)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodHead, http.MethodDelete)
		}
	case len(segments) == 2 && segments[1] == "events":
		s.allow(w, r, func(w http.ResponseWriter, r *http.Request) {
			s.withSession(w, segments[0], func(sess *session) error { return s.event(w, r, sess) })
		}, http.MethodPost)
	case len(segments) == 2 && segments[1] == "values":
		s.allow(w, r, func(w http.ResponseWriter, r *http.Request) {
			s.withSession(w, segments[0], func(sess *session) error { return s.values(w, sess) })
		}, http.MethodGet)
	default:
		http.NotFound(w, r)
	}
}

func (s *server) allow(w http.ResponseWriter, r *http.Request, next http.HandlerFunc, methods ...string) {
	for _, method := range methods {
		if r.Method == method {
			next(w, r)
			return
		}
	}
	methodNotAllowed(w, methods...)
}

// withSession runs fn with the session locked and maps its error to a status.
func (s *server) withSession(w http.ResponseWriter, id string, fn func(*session) error) {
	sess, ok := s.sessions.get(id)
	if !ok {
		writeError(w, StatusError{Code: http.StatusNotFound, Err: errUnknownSession})
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		writeError(w, StatusError{Code: http.StatusNotFound, Err: errUnknownSession})
		return
	}
	if err := fn(sess); err != nil {
		s.opts.Logger.Debug("enhancers request failed",
			slog.String("session", id),
			slog.String("reason", err.Error()),
		)
		writeError(w, err)
	}
}

func (s *server) newPage(w http.ResponseWriter, r *http.Request) {
	markup, err := s.renderPage()
	if err != nil {
		s.opts.Logger.Error("enhancers page render failed", slog.String("reason", err.Error()))
		writeError(w, err)
		return
	}
	sess, err := newSession(markup, s.sessionOptions())
	if err != nil {
		s.opts.Logger.Error("enhancers session failed", slog.String("reason", err.Error()))
		writeError(w, err)
		return
	}
	s.sessions.add(sess)
	s.opts.Logger.Debug("enhancers session opened", slog.String("session", sess.id))

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.page(w, r, sess); err != nil {
		writeError(w, err)
	}
}

func (s *server) sessionOptions() []enhancers.Option {
	options := []enhancers.Option{enhancers.WithLogger(s.opts.Logger)}
	return append(options, s.opts.Enhancers...)
}

// renderPage renders the page template with every catalog as a native
// select. Session attributes are stamped on <main> once the id exists.
func (s *server) renderPage() (string, error) {
	if s.engineErr != nil {
		return "", s.engineErr
	}
	var fields bytes.Buffer
	for _, c := range s.opts.Catalogs.All() {
		if err := c.Render(&fields); err != nil {
			return "", fmt.Errorf("searchselect: render catalog %s: %w", c.ID, err)
		}
		fields.WriteByte('\n')
	}
	return s.engine.Render(pageTemplate, map[string]any{
		"title":  s.opts.Title,
		"flash":  s.opts.Flash,
		"mount":  s.mount,
		"fields": fields.String(),
	})
}

func (s *server) page(w http.ResponseWriter, r *http.Request, sess *session) error {
	if content := dom.Find(sess.doc.Root, dom.Element("main")); content != nil {
		dom.SetAttr(content, "data-session", sess.id)
		dom.SetAttr(content, "data-events", s.mount+"/"+sess.id+"/events")
	}
	var buf bytes.Buffer
	if err := sess.doc.Render(&buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set(HeaderSession, sess.id)
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return nil
	}
	_, _ = w.Write(buf.Bytes())
	return nil
}

func (s *server) event(w http.ResponseWriter, r *http.Request, sess *session) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return StatusError{Code: http.StatusRequestEntityTooLarge, Err: err}
		}
		return StatusError{Code: http.StatusBadRequest, Err: err}
	}

	node := sess.doc.ElementByID(strings.TrimSpace(req.Control))
	if node == nil {
		return StatusError{Code: http.StatusNotFound, Err: errUnknownControl}
	}
	widget, ok := sess.enhancers.Selects.Widget(node)
	if !ok {
		return StatusError{Code: http.StatusNotFound, Err: errUnknownControl}
	}

	before := len(sess.changes)
	switch req.Type {
	case EventFocus:
		widget.FocusInput()
	case EventInput:
		widget.Type(req.Text)
	case EventKeyDown:
		widget.Press(req.Key)
	case EventClickOption:
		widget.ClickOption(req.Value)
	case EventClickOutside:
		enhance.Click(sess.doc, sess.doc.Body())
	case EventClear:
		widget.ClickClear()
	default:
		return StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("%w: %q", errUnknownEvent, req.Type)}
	}

	fragment, err := dom.OuterHTML(widget.Wrapper())
	if err != nil {
		return err
	}
	value, _ := widget.Adapter().SelectedValue()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set(HeaderValue, value)
	if len(sess.changes) > before {
		w.Header().Set(HeaderChange, req.Control)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(fragment))
	return nil
}

func (s *server) values(w http.ResponseWriter, sess *session) error {
	changes := append([]string{}, sess.changes...)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	return enc.Encode(valuesResponse{Session: sess.id, Values: sess.values(), Changes: changes})
}

func (s *server) closeSession(w http.ResponseWriter, id string) {
	sess, ok := s.sessions.remove(id)
	if !ok {
		writeError(w, StatusError{Code: http.StatusNotFound, Err: errUnknownSession})
		return
	}
	sess.mu.Lock()
	err := sess.close()
	sess.mu.Unlock()
	if err != nil {
		s.opts.Logger.Warn("enhancers session close failed",
			slog.String("session", id),
			slog.String("reason", err.Error()),
		)
	}
	w.WriteHeader(http.StatusNoContent)
}

func splitPath(path string) []string {
	var out []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func methodNotAllowed(w http.ResponseWriter, methods ...string) {
	w.Header().Set("Allow", strings.Join(methods, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

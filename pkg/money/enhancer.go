package money

import (
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/text/language"

	"github.com/goliatone/go-enhancers/pkg/dom"
)

// Selector is the data-enhance value handled by the Enhancer.
const Selector = "money"

// RawSuffix names the hidden input mirroring the canonical amount: an input
// with id "price" is paired with "price_raw".
const RawSuffix = "_raw"

// Option configures an Enhancer.
type Option func(*Enhancer)

// WithLocale overrides the display locale.
func WithLocale(tag language.Tag) Option {
	return func(e *Enhancer) {
		e.locale = tag
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enhancer) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Enhancer binds money inputs in a document.
type Enhancer struct {
	locale language.Tag
	logger *slog.Logger

	mu     sync.Mutex
	fields map[*html.Node]*Field
	subs   []dom.Subscription
}

// Field is one bound money input.
type Field struct {
	Input *html.Node
	Raw   *html.Node
	Scale int

	canonical string
	display   string
}

// Canonical returns the last parsed amount as a dot-decimal string.
func (f *Field) Canonical() string {
	return f.canonical
}

// NewEnhancer returns an Enhancer using DefaultLocale.
func NewEnhancer(options ...Option) *Enhancer {
	e := &Enhancer{
		locale: DefaultLocale,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		fields: make(map[*html.Node]*Field),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Attach binds the document's money inputs at its ready point.
func (e *Enhancer) Attach(doc *dom.Document) error {
	if doc == nil {
		return dom.ErrNilDocument
	}
	return doc.OnReady(func(d *dom.Document) error {
		e.Bind(d)
		return nil
	})
}

// Bind formats every unbound money input and subscribes its listeners. It
// returns the number of inputs bound.
func (e *Enhancer) Bind(doc *dom.Document) int {
	count := 0
	for _, input := range dom.FindAll(doc.Root, dom.WithAttr("input", "data-enhance", Selector)) {
		e.mu.Lock()
		_, bound := e.fields[input]
		e.mu.Unlock()
		if bound {
			continue
		}

		field := &Field{Input: input, Scale: scaleOf(input)}
		if id := dom.AttrOr(input, "id", ""); id != "" {
			field.Raw = doc.ElementByID(id + RawSuffix)
		}
		if value := dom.AttrOr(input, "value", ""); value != "" {
			e.commit(field)
		}
		e.bindField(doc, field)
		count++
	}
	return count
}

// Field returns the binding for input.
func (e *Enhancer) Field(input *html.Node) (*Field, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	field, ok := e.fields[input]
	return field, ok
}

// Close releases every listener.
func (e *Enhancer) Close() error {
	e.mu.Lock()
	subs := e.subs
	e.subs = nil
	e.fields = make(map[*html.Node]*Field)
	e.mu.Unlock()
	for _, sub := range subs {
		sub.Release()
	}
	return nil
}

func (e *Enhancer) bindField(doc *dom.Document, field *Field) {
	bus := doc.Events()
	subs := []dom.Subscription{
		bus.On(field.Input, dom.EventFocus, func(*dom.Event, *html.Node) {
			canonical := field.canonical
			if field.Raw != nil {
				canonical = dom.AttrOr(field.Raw, "value", "")
			}
			if canonical != "" {
				dom.SetAttr(field.Input, "value", EditText(canonical))
			}
		}),
		bus.On(field.Input, dom.EventBlur, func(*dom.Event, *html.Node) {
			e.commit(field)
		}),
		bus.On(field.Input, dom.EventInput, func(*dom.Event, *html.Node) {
			canonical, _ := Parse(dom.AttrOr(field.Input, "value", ""), field.Scale)
			e.setRaw(field, canonical)
		}),
	}

	e.mu.Lock()
	e.fields[field.Input] = field
	e.subs = append(e.subs, subs...)
	e.mu.Unlock()
}

// commit parses the input, mirrors the canonical amount and shows the
// formatted text. Text still equal to the last display is not re-parsed:
// its grouping symbols would read as a decimal point.
func (e *Enhancer) commit(field *Field) {
	text := dom.AttrOr(field.Input, "value", "")
	canonical, ok := field.canonical, true
	if field.display == "" || text != field.display {
		canonical, ok = Parse(text, field.Scale)
	}
	if !ok && strings.TrimSpace(text) != "" {
		e.logger.Debug("money input cleared",
			slog.String("control", dom.AttrOr(field.Input, "id", "")),
			slog.String("reason", "no digits"),
		)
	}
	e.setRaw(field, canonical)
	display := ""
	if ok {
		display = FormatIn(e.locale, canonical, field.Scale)
	}
	field.display = display
	dom.SetAttr(field.Input, "value", display)
}

func (e *Enhancer) setRaw(field *Field, canonical string) {
	field.canonical = canonical
	if field.Raw != nil {
		dom.SetAttr(field.Raw, "value", canonical)
	}
}

func scaleOf(input *html.Node) int {
	raw, ok := dom.Attr(input, "data-scale")
	if !ok {
		return DefaultScale
	}
	scale, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || scale < 0 {
		return DefaultScale
	}
	return scale
}

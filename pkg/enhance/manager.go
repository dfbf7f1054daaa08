package enhance

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-enhancers/pkg/combobox"
	"github.com/goliatone/go-enhancers/pkg/dom"
	"github.com/goliatone/go-enhancers/pkg/render/template"
	"github.com/goliatone/go-enhancers/pkg/render/template/gotemplate"
)

// Manager enhances searchable selects and keeps the registry of live widgets.
type Manager struct {
	cfg       *config
	renderer  template.TemplateRenderer
	announcer combobox.Announcer

	// enhanceMu serializes Enhance so a control is built at most once.
	enhanceMu sync.Mutex

	mu      sync.Mutex
	widgets map[*html.Node]*Widget
	order   []*html.Node
}

// NewManager builds a Manager. Without WithRenderer the widget template is
// rendered by a pongo2 engine over the configured template filesystem.
func NewManager(options ...Option) (*Manager, error) {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	renderer := cfg.renderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templates))
		if err != nil {
			return nil, fmt.Errorf("enhance: template engine: %w", err)
		}
		renderer = engine
	}

	return &Manager{
		cfg:       cfg,
		renderer:  renderer,
		announcer: combobox.NewAnnouncer(cfg.messages),
		widgets:   make(map[*html.Node]*Widget),
	}, nil
}

// Attach enhances doc when it reaches its ready point. Controls added after
// that need an explicit Enhance call.
func (m *Manager) Attach(doc *dom.Document) error {
	if doc == nil {
		return dom.ErrNilDocument
	}
	return doc.OnReady(func(d *dom.Document) error {
		_, err := m.Enhance(d)
		return err
	})
}

// Enhance attaches a widget to every unenhanced searchable select in doc and
// returns how many were enhanced. Controls whose widget cannot be built are
// left untouched and logged at debug level.
func (m *Manager) Enhance(doc *dom.Document) (int, error) {
	if doc == nil || doc.Root == nil {
		return 0, dom.ErrNilDocument
	}
	m.enhanceMu.Lock()
	defer m.enhanceMu.Unlock()

	count := 0
	for _, node := range dom.FindAll(doc.Root, dom.WithAttr("select", "data-enhance", Selector)) {
		if m.registered(node) || dom.AttrOr(node, markerAttr, "") == markerValue {
			continue
		}
		widget, err := m.build(doc, node)
		if err != nil {
			m.cfg.logger.Debug("searchable select not enhanced",
				slog.String("control", controlName(node)),
				slog.String("reason", err.Error()),
			)
			continue
		}
		m.register(node, widget)
		count++
	}
	return count, nil
}

// Widget returns the widget attached to the native select node.
func (m *Manager) Widget(node *html.Node) (*Widget, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	widget, ok := m.widgets[node]
	return widget, ok
}

// Widgets returns the live widgets in enhancement order.
func (m *Manager) Widgets() []*Widget {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Widget, 0, len(m.order))
	for _, node := range m.order {
		out = append(out, m.widgets[node])
	}
	return out
}

// Teardown removes the widget attached to node, releases its listeners and
// restores the native control. It reports whether a widget was removed.
func (m *Manager) Teardown(node *html.Node) bool {
	m.mu.Lock()
	widget, ok := m.widgets[node]
	if ok {
		delete(m.widgets, node)
		for idx, registered := range m.order {
			if registered == node {
				m.order = append(m.order[:idx], m.order[idx+1:]...)
				break
			}
		}
	}
	m.mu.Unlock()

	if ok {
		widget.release()
	}
	return ok
}

// Close tears down every widget.
func (m *Manager) Close() error {
	m.mu.Lock()
	nodes := append([]*html.Node(nil), m.order...)
	m.mu.Unlock()
	for _, node := range nodes {
		m.Teardown(node)
	}
	return nil
}

func (m *Manager) registered(node *html.Node) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.widgets[node]
	return ok
}

func (m *Manager) register(node *html.Node, widget *Widget) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.widgets[node] = widget
	m.order = append(m.order, node)
}

func (m *Manager) build(doc *dom.Document, node *html.Node) (*Widget, error) {
	if node.Parent == nil {
		return nil, errors.New("enhance: control is detached")
	}
	adapter, err := dom.NewSelectAdapter(doc, node)
	if err != nil {
		return nil, err
	}

	wrapper, err := m.renderWrapper(doc, adapter)
	if err != nil {
		return nil, err
	}
	input, clearButton, listbox, status, err := locateCollaborators(wrapper)
	if err != nil {
		return nil, err
	}

	widget := &Widget{
		doc:       doc,
		adapter:   adapter,
		announcer: m.announcer,
		logger:    m.cfg.logger,
		wrapper:   wrapper,
		input:     input,
		clear:     clearButton,
		listbox:   listbox,
		status:    status,
	}

	controller, err := combobox.NewController(adapter, widget, combobox.WithLogger(m.cfg.logger))
	if err != nil {
		return nil, err
	}
	widget.controller = controller
	widget.suppressNative()
	widget.bind()
	return widget, nil
}

func (m *Manager) renderWrapper(doc *dom.Document, adapter *dom.SelectAdapter) (*html.Node, error) {
	base := doc.NextID("searchable-select")
	messages := m.announcer.Messages()
	data := map[string]any{
		"ids": map[string]any{
			"root":    base,
			"input":   base + "-input",
			"listbox": base + "-listbox",
			"status":  base + "-status",
		},
		"placeholder": adapter.Placeholder(),
		"disabled":    adapter.Disabled(),
		"control":     controlName(adapter.Node()),
		"messages": map[string]any{
			"clear": messages.Clear,
			"empty": messages.Empty,
		},
		"theme": buildThemeContext(m.cfg.theme),
	}

	markup, err := m.renderer.RenderTemplate(m.cfg.templateName(), data)
	if err != nil {
		return nil, err
	}

	parent := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), parent)
	if err != nil {
		return nil, fmt.Errorf("enhance: parse widget markup: %w", err)
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return n, nil
		}
	}
	return nil, ErrEmptyTemplate
}

package searchselect

import (
	"net/http"
	"sync"
)

// Component wraps one session-hosting handler with its configuration and
// routing helpers. Sessions live as long as the component.
type Component struct {
	opts Options

	once    sync.Once
	handler http.Handler
}

// New constructs a new component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{opts: opts}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the component handler, serving requests under the
// configured route path. Repeated calls return the same handler.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	c.once.Do(func() {
		c.handler = HandlerWithOptions(c.opts)
	})
	return c.handler
}

// RegisterRoutes registers the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}

package combobox

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Surface applies rendering effects. Implementations never see Select or
// NotifyChange; those go to the Source.
type Surface interface {
	Apply(effect Effect) error
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(effect Effect) error

// Apply implements Surface.
func (fn SurfaceFunc) Apply(effect Effect) error {
	return fn(effect)
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger routes controller diagnostics to logger.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller owns one widget's state and serializes its events.
type Controller struct {
	mu      sync.Mutex
	source  Source
	surface Surface
	state   State
	logger  *slog.Logger
}

// NewController builds the Closed state from source and applies the initial
// effects (seeded filter text, collapsed panel) to surface.
func NewController(source Source, surface Surface, options ...ControllerOption) (*Controller, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if surface == nil {
		return nil, ErrNilSurface
	}
	c := &Controller{
		source:  source,
		surface: surface,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	state, effects := Initial(source.Options(), source.Disabled())
	c.state = state
	if err := c.apply(effects); err != nil {
		return nil, err
	}
	return c, nil
}

// Dispatch runs event through the reducer and applies the resulting effects.
// The state advances even when the surface fails; the first surface error is
// returned after every effect has been attempted.
func (c *Controller) Dispatch(event Event) error {
	if event == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	next, effects := Reduce(c.state, c.source.Options(), event)
	c.state = next
	if len(effects) > 0 {
		c.logger.Debug("combobox event",
			slog.String("event", fmt.Sprintf("%T", event)),
			slog.Int("effects", len(effects)),
			slog.Bool("open", next.Open),
		)
	}
	return c.apply(effects)
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Source returns the enhanced control.
func (c *Controller) Source() Source {
	return c.source
}

func (c *Controller) apply(effects []Effect) error {
	var firstErr error
	for _, effect := range effects {
		switch e := effect.(type) {
		case Select:
			c.source.SetSelectedValue(e.Value)
		case NotifyChange:
			c.source.NotifyChange()
		default:
			if err := c.surface.Apply(effect); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("combobox: apply %T: %w", effect, err)
			}
		}
	}
	return firstErr
}

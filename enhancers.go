// Package enhancers attaches the page enhancers (searchable selects, money
// inputs, collapsible sections and toasts) to a server-rendered document.
package enhancers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-enhancers/pkg/collapse"
	"github.com/goliatone/go-enhancers/pkg/dom"
	"github.com/goliatone/go-enhancers/pkg/enhance"
	"github.com/goliatone/go-enhancers/pkg/money"
	"github.com/goliatone/go-enhancers/pkg/toast"
)

// Option configures Attach.
type Option func(*config)

type config struct {
	logger          *slog.Logger
	theme           *theme.RendererConfig
	managerOptions  []enhance.Option
	moneyOptions    []money.Option
	collapseOptions []collapse.Option
	toastOptions    []toast.Option
}

// WithLogger routes every enhancer's diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithTheme applies theme metadata to the searchable selects.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithManagerOptions forwards options to the searchable-select manager.
func WithManagerOptions(options ...enhance.Option) Option {
	return func(c *config) {
		c.managerOptions = append(c.managerOptions, options...)
	}
}

// WithMoneyOptions forwards options to the money enhancer.
func WithMoneyOptions(options ...money.Option) Option {
	return func(c *config) {
		c.moneyOptions = append(c.moneyOptions, options...)
	}
}

// WithCollapseOptions forwards options to the collapse toggler.
func WithCollapseOptions(options ...collapse.Option) Option {
	return func(c *config) {
		c.collapseOptions = append(c.collapseOptions, options...)
	}
}

// WithToastOptions forwards options to the toast notifier.
func WithToastOptions(options ...toast.Option) Option {
	return func(c *config) {
		c.toastOptions = append(c.toastOptions, options...)
	}
}

// Enhancers groups the enhancers attached to one document.
type Enhancers struct {
	Doc      *dom.Document
	Selects  *enhance.Manager
	Money    *money.Enhancer
	Collapse *collapse.Toggler
	Toasts   *toast.Notifier
}

// Attach registers every enhancer on doc. They run when doc.Ready is called,
// or immediately when the document is already ready.
func Attach(doc *dom.Document, options ...Option) (*Enhancers, error) {
	if doc == nil {
		return nil, dom.ErrNilDocument
	}
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	managerOptions := cfg.managerOptions
	moneyOptions := cfg.moneyOptions
	if cfg.logger != nil {
		managerOptions = append([]enhance.Option{enhance.WithLogger(cfg.logger)}, managerOptions...)
		moneyOptions = append([]money.Option{money.WithLogger(cfg.logger)}, moneyOptions...)
	}
	if cfg.theme != nil {
		managerOptions = append(managerOptions, enhance.WithTheme(cfg.theme))
	}

	manager, err := enhance.NewManager(managerOptions...)
	if err != nil {
		return nil, err
	}
	e := &Enhancers{
		Doc:      doc,
		Selects:  manager,
		Money:    money.NewEnhancer(moneyOptions...),
		Collapse: collapse.New(cfg.collapseOptions...),
		Toasts:   toast.New(doc, cfg.toastOptions...),
	}

	for _, attach := range []func() error{
		func() error { return e.Selects.Attach(doc) },
		func() error { return e.Money.Attach(doc) },
		func() error { return e.Collapse.Attach(doc) },
		e.Toasts.Attach,
	} {
		if err := attach(); err != nil {
			_ = e.Close()
			return nil, fmt.Errorf("enhancers: attach: %w", err)
		}
	}
	return e, nil
}

// Close releases every listener and restores the enhanced controls.
func (e *Enhancers) Close() error {
	if e == nil {
		return nil
	}
	return errors.Join(
		e.Toasts.Close(),
		e.Collapse.Close(),
		e.Money.Close(),
		e.Selects.Close(),
	)
}

// EnhanceHTML parses a page, runs every enhancer at the ready point and
// writes the enhanced markup to w.
func EnhanceHTML(ctx context.Context, r io.Reader, w io.Writer, options ...Option) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := dom.Parse(r)
	if err != nil {
		return err
	}
	if _, err := Attach(doc, options...); err != nil {
		return err
	}
	if err := doc.Ready(); err != nil {
		return fmt.Errorf("enhancers: ready: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return doc.Render(w)
}

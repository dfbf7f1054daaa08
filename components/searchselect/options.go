package searchselect

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-enhancers"
	"github.com/goliatone/go-enhancers/pkg/catalog"
)

const (
	defaultRoutePath    = "/enhancers"
	defaultTitle        = "Enhancers"
	defaultMaxSessions  = 256
	defaultMaxBodyBytes = 16 << 10
)

// GuardFunc authorizes a request. A returned error implementing HTTPError
// selects the response status; any other error yields 403.
type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath    string
	Title        string
	Flash        string
	MaxSessions  int
	MaxBodyBytes int64
	Guard        GuardFunc
	Logger       *slog.Logger

	Catalogs  *catalog.Store
	Enhancers []enhancers.Option
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    defaultRoutePath,
		Title:        defaultTitle,
		MaxSessions:  defaultMaxSessions,
		MaxBodyBytes: defaultMaxBodyBytes,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.Title == "" {
		opts.Title = defaultTitle
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = defaultMaxSessions
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Catalogs == nil {
		opts.Catalogs = catalog.NewStore()
	}
	if opts.Enhancers != nil {
		opts.Enhancers = append([]enhancers.Option{}, opts.Enhancers...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithTitle(title string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Title = title
	}
}

// WithFlash shows message as a success toast on every new session page.
func WithFlash(message string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Flash = message
	}
}

func WithMaxSessions(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxSessions = limit
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

// WithCatalogs sets the option catalogs rendered on every session page.
func WithCatalogs(store *catalog.Store) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Catalogs = store
	}
}

// WithEnhancerOptions forwards options to enhancers.Attach for each session.
func WithEnhancerOptions(options ...enhancers.Option) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Enhancers = append(o.Enhancers, options...)
	}
}

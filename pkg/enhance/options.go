package enhance

import (
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"slices"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-enhancers/pkg/combobox"
	"github.com/goliatone/go-enhancers/pkg/render/template"
)

// Selector is the attribute value marking controls to enhance.
const Selector = "searchable-select"

// Option configures a Manager.
type Option func(*config)

type config struct {
	logger    *slog.Logger
	messages  combobox.Messages
	renderer  template.TemplateRenderer
	templates fs.FS
	theme     *theme.RendererConfig
}

// WithLogger sets the logger used for diagnostics. Aborted enhancements are
// logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithMessages overrides the announcer and label texts.
func WithMessages(messages combobox.Messages) Option {
	return func(cfg *config) {
		cfg.messages = messages
	}
}

// WithRenderer renders widget markup through renderer instead of the built-in
// pongo2 engine.
func WithRenderer(renderer template.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.renderer = renderer
		}
	}
}

// WithTemplatesFS replaces the embedded templates. The filesystem must provide
// combobox.tmpl at its root, or the partial named by the theme.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTheme applies theme metadata to rendered widgets. A partial registered
// under ThemePartialKey replaces the default template.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

func defaultConfig() *config {
	return &config{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		messages:  combobox.DefaultMessages(),
		templates: TemplatesFS(),
	}
}

func (c *config) templateName() string {
	if c.theme != nil {
		if partial := strings.TrimSpace(c.theme.Partials[ThemePartialKey]); partial != "" {
			return partial
		}
	}
	return DefaultTemplate
}

type themeContext struct {
	Name         string            `json:"name,omitempty"`
	Variant      string            `json:"variant,omitempty"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVarsStyle string            `json:"css_vars_style,omitempty"`
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	return themeContext{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		Tokens:       maps.Clone(cfg.Tokens),
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	var b strings.Builder
	for _, key := range slices.Sorted(maps.Keys(vars)) {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(vars[key]))
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}

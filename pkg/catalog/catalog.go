package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/goliatone/go-enhancers/pkg/combobox"
)

// Catalog describes one enhanced select.
type Catalog struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name,omitempty" yaml:"name,omitempty"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Selected    string            `json:"selected,omitempty" yaml:"selected,omitempty"`
	Disabled    bool              `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Options     []combobox.Option `json:"options" yaml:"options"`
	Source      string            `json:"-" yaml:"-"`
}

// Store keeps catalogs by id in load order.
type Store struct {
	catalogs map[string]Catalog
	order    []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{catalogs: make(map[string]Catalog)}
}

// Add normalises c and stores it.
func (s *Store) Add(c Catalog) error {
	normalised, err := normalise(c)
	if err != nil {
		return err
	}
	if _, exists := s.catalogs[normalised.ID]; exists {
		return fmt.Errorf("%w: %q (source %s)", ErrDuplicate, normalised.ID, normalised.Source)
	}
	s.catalogs[normalised.ID] = normalised
	s.order = append(s.order, normalised.ID)
	return nil
}

// Catalog returns the catalog registered under id.
func (s *Store) Catalog(id string) (Catalog, bool) {
	if s == nil {
		return Catalog{}, false
	}
	c, ok := s.catalogs[id]
	return c, ok
}

// Lookup is Catalog returning ErrNotFound for unknown ids.
func (s *Store) Lookup(id string) (Catalog, error) {
	c, ok := s.Catalog(id)
	if !ok {
		return Catalog{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c, nil
}

// IDs lists catalog ids in load order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.order)
}

// All returns every catalog in load order.
func (s *Store) All() []Catalog {
	if s == nil {
		return nil
	}
	out := make([]Catalog, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.catalogs[id])
	}
	return out
}

// StaticSource builds an in-memory combobox source preselecting Selected.
// The placeholder, when set, becomes a disabled option with an empty value.
func (c Catalog) StaticSource() *combobox.StaticSource {
	options := c.withPlaceholder()
	selected := c.Selected
	if _, ok := findValue(options, selected); !ok {
		selected = ""
	}
	return combobox.NewStaticSource(options,
		combobox.WithSelected(selected),
		combobox.WithDisabled(c.Disabled),
	)
}

func (c Catalog) withPlaceholder() []combobox.Option {
	options := make([]combobox.Option, 0, len(c.Options)+1)
	if c.Placeholder != "" {
		options = append(options, combobox.Option{Label: c.Placeholder, Disabled: true})
	}
	return append(options, c.Options...)
}

var labelPolicy = bluemonday.StrictPolicy()

// plainText strips markup from s. The policy escapes its output; the escaping
// is undone because the renderer escapes again on write.
func plainText(s string) string {
	cleaned := labelPolicy.Sanitize(s)
	return strings.Join(strings.Fields(html.UnescapeString(cleaned)), " ")
}

func normalise(c Catalog) (Catalog, error) {
	c.ID = strings.TrimSpace(c.ID)
	if c.ID == "" {
		return Catalog{}, fmt.Errorf("%w (source %s)", ErrEmptyID, c.Source)
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		c.Name = c.ID
	}
	c.Label = plainText(c.Label)
	c.Placeholder = plainText(c.Placeholder)
	c.Selected = strings.TrimSpace(c.Selected)

	options := make([]combobox.Option, 0, len(c.Options))
	seen := make(map[string]struct{}, len(c.Options))
	for idx, option := range c.Options {
		option.Value = strings.TrimSpace(option.Value)
		option.Label = plainText(option.Label)
		if option.Label == "" {
			option.Label = option.Value
		}
		if option.Value == "" {
			return Catalog{}, fmt.Errorf("catalog: %s option %d has an empty value", c.ID, idx)
		}
		if _, dup := seen[option.Value]; dup {
			return Catalog{}, fmt.Errorf("catalog: %s repeats option %q", c.ID, option.Value)
		}
		seen[option.Value] = struct{}{}
		if option.Selected && c.Selected == "" {
			c.Selected = option.Value
		}
		option.Selected = false
		options = append(options, option)
	}
	c.Options = options
	return c, nil
}

func findValue(options []combobox.Option, value string) (combobox.Option, bool) {
	for _, option := range options {
		if option.Value == value {
			return option, true
		}
	}
	return combobox.Option{}, false
}

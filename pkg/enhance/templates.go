package enhance

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// DefaultTemplate is the template name rendered for each control.
const DefaultTemplate = "combobox"

// ThemePartialKey selects a theme partial that replaces DefaultTemplate.
const ThemePartialKey = "searchable-select"

// TemplatesFS exposes the built-in widget templates rooted at their directory.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

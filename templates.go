package enhancers

import (
	"io/fs"

	"github.com/goliatone/go-enhancers/pkg/enhance"
)

// EmbeddedTemplates exposes the built-in widget templates so callers can copy
// or extend them and pass the result back through enhance.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return enhance.TemplatesFS()
}

package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/net/html"

	"github.com/goliatone/go-enhancers/pkg/catalog"
	"github.com/goliatone/go-enhancers/pkg/dom"
)

// MustParseDocument parses markup into a document, failing the test on error.
func MustParseDocument(t *testing.T, markup string) *dom.Document {
	t.Helper()

	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

// MustParseCatalogs loads an inline JSON or YAML catalog document.
func MustParseCatalogs(t *testing.T, data string) *catalog.Store {
	t.Helper()

	store, err := catalog.Parse([]byte(data), t.Name())
	if err != nil {
		t.Fatalf("parse catalogs: %v", err)
	}
	return store
}

// LoadCatalogs reads a catalog fixture without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadCatalogs(path string) (*catalog.Store, error) {
	if path == "" {
		return nil, errors.New("testsupport: catalog path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read catalogs: %w", err)
	}
	return catalog.Parse(data, path)
}

// WriteFixture writes data under dir and returns the file path.
func WriteFixture(t *testing.T, dir, name, data string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// OptionRows returns the labels of the option rows rendered under root, in
// document order.
func OptionRows(root *html.Node) []string {
	var out []string
	for _, row := range dom.FindAll(root, dom.WithClass("div", "ss-option")) {
		out = append(out, dom.TextContent(row))
	}
	return out
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

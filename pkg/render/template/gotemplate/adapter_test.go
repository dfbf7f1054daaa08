package gotemplate

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-enhancers/pkg/testsupport"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	files := fstest.MapFS{
		"templates/hello.tmpl":  {Data: []byte(`Hello {{ name }}!`)},
		"templates/global.tmpl": {Data: []byte(`env={{ settings.env }}`)},
		"templates/escape.tmpl": {Data: []byte(`<b title="{{ label }}">{{ label }}</b>`)},
	}
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngineRenderTemplateWritesToWriters(t *testing.T) {
	engine := newTestEngine(t)
	got, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("templates/hello", map[string]any{"name": "Ada"}, w)
	})
	if got != "Hello Ada!" || written != got {
		t.Fatalf("unexpected output %q / %q", got, written)
	}
}

func TestEngineGlobalContext(t *testing.T) {
	engine := newTestEngine(t)
	if err := engine.GlobalContext(map[string]any{"settings": map[string]any{"env": "staging"}}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	got, err := engine.RenderTemplate("templates/global.tmpl", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngineEscapesValues(t *testing.T) {
	engine := newTestEngine(t)
	got, err := engine.RenderTemplate("templates/escape", map[string]any{"label": `<x>"`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<x>") {
		t.Fatalf("value not escaped: %q", got)
	}
}

func TestEngineRenderDetectsInlineContent(t *testing.T) {
	engine := newTestEngine(t)
	got, err := engine.Render(`{{ a }}-{{ b }}`, struct {
		A string `json:"a"`
		B int    `json:"b"`
	}{A: "x", B: 2})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "x-2" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

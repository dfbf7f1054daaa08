package testsupport

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const fixtureCatalogs = `catalogs:
  size:
    options:
      - value: s
        label: Small
      - value: m
        label: Medium
`

func TestLoadCatalogsRoundTrip(t *testing.T) {
	path := WriteFixture(t, t.TempDir(), "fixtures/sizes.yaml", fixtureCatalogs)
	store, err := LoadCatalogs(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c, ok := store.Catalog("size")
	if !ok {
		t.Fatalf("size catalog missing")
	}
	if c.Source != path {
		t.Fatalf("source = %q, want %q", c.Source, path)
	}
	if _, err := LoadCatalogs(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestOptionRows(t *testing.T) {
	doc := MustParseDocument(t, `<div class="ss-options">
<div class="ss-option" role="option">Small</div>
<div class="ss-empty">No options</div>
<div class="ss-option focused" role="option">Medium</div>
</div>`)
	if diff := cmp.Diff([]string{"Small", "Medium"}, OptionRows(doc.Root)); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestMustParseCatalogs(t *testing.T) {
	store := MustParseCatalogs(t, fixtureCatalogs)
	if diff := cmp.Diff([]string{"size"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

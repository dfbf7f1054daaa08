package money

import (
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/text/language"

	"github.com/goliatone/go-enhancers/pkg/dom"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		input string
		scale int
		want  string
		ok    bool
	}{
		{name: "comma decimal", input: "1.234,56", scale: 2, want: "1234.56", ok: true},
		{name: "dot decimal", input: "1,234.56", scale: 2, want: "1234.56", ok: true},
		{name: "currency symbol", input: "R$ 12,5", scale: 2, want: "12.50", ok: true},
		{name: "integer", input: "1500", scale: 2, want: "1500.00", ok: true},
		{name: "later separator wins", input: "1.234", scale: 3, want: "1.234", ok: true},
		{name: "repeated grouping", input: "1.234.567,8", scale: 2, want: "1234567.80", ok: true},
		{name: "rounds half away from zero", input: "0,005", scale: 2, want: "0.01", ok: true},
		{name: "leading fraction", input: ",75", scale: 2, want: "0.75", ok: true},
		{name: "negative", input: "-R$ 3,20", scale: 2, want: "-3.20", ok: true},
		{name: "negative zero", input: "-0,001", scale: 2, want: "0.00", ok: true},
		{name: "zero scale", input: "9,99", scale: 0, want: "10", ok: true},
		{name: "no digits", input: "abc", scale: 2, want: "", ok: false},
		{name: "empty", input: "", scale: 2, want: "", ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Parse(tc.input, tc.scale)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("Parse(%q, %d) = %q, %v; want %q, %v", tc.input, tc.scale, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		canonical string
		scale     int
		want      string
	}{
		{canonical: "1234.56", scale: 2, want: "1.234,56"},
		{canonical: "0.5", scale: 2, want: "0,50"},
		{canonical: "1234567", scale: 0, want: "1.234.567"},
		{canonical: "-1234.5", scale: 2, want: "-1.234,50"},
		{canonical: "-0.001", scale: 2, want: "0,00"},
		{canonical: "12345678901234567.89", scale: 2, want: "12.345.678.901.234.567,89"},
		{canonical: "999", scale: 0, want: "999"},
		{canonical: "", scale: 2, want: ""},
		{canonical: "x", scale: 2, want: ""},
	}
	for _, tc := range cases {
		if got := Format(tc.canonical, tc.scale); got != tc.want {
			t.Fatalf("Format(%q, %d) = %q, want %q", tc.canonical, tc.scale, got, tc.want)
		}
	}
}

func TestFormatInLocale(t *testing.T) {
	if got := FormatIn(language.AmericanEnglish, "9876543.21", 2); got != "9,876,543.21" {
		t.Fatalf("FormatIn(en-US) = %q", got)
	}
}

const moneyPage = `<html><body><form>
<input id="price" name="price_display" data-enhance="money" value="1234,5">
<input type="hidden" id="price_raw" name="price">
<input id="rate" data-enhance="money" data-scale="3">
</form></body></html>`

func newMoneyDoc(t *testing.T) (*dom.Document, *Enhancer) {
	t.Helper()
	doc, err := dom.ParseString(moneyPage)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	enhancer := NewEnhancer()
	if err := enhancer.Attach(doc); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := doc.Ready(); err != nil {
		t.Fatalf("ready: %v", err)
	}
	t.Cleanup(func() { _ = enhancer.Close() })
	return doc, enhancer
}

func value(n *html.Node) string {
	return dom.AttrOr(n, "value", "")
}

func TestEnhancerFormatsInitialValue(t *testing.T) {
	doc, enhancer := newMoneyDoc(t)
	price := doc.ElementByID("price")

	if got := value(price); got != "1.234,50" {
		t.Fatalf("display = %q", got)
	}
	if got := value(doc.ElementByID("price_raw")); got != "1234.50" {
		t.Fatalf("raw = %q", got)
	}
	field, ok := enhancer.Field(doc.ElementByID("rate"))
	if !ok || field.Scale != 3 || field.Raw != nil {
		t.Fatalf("unexpected rate binding: %+v", field)
	}
	if got := value(doc.ElementByID("rate")); got != "" {
		t.Fatalf("empty input should stay empty, got %q", got)
	}
}

func TestEnhancerEditCycle(t *testing.T) {
	doc, _ := newMoneyDoc(t)
	price := doc.ElementByID("price")
	raw := doc.ElementByID("price_raw")

	doc.Dispatch(price, dom.Event{Type: dom.EventFocus})
	if got := value(price); got != "1234,50" {
		t.Fatalf("focus should show the edit text, got %q", got)
	}

	dom.SetAttr(price, "value", "99,9")
	doc.Dispatch(price, dom.Event{Type: dom.EventInput, Bubbles: true})
	if got := value(raw); got != "99.90" {
		t.Fatalf("input should sync raw, got %q", got)
	}
	if got := value(price); got != "99,9" {
		t.Fatalf("input must not reformat while typing, got %q", got)
	}

	doc.Dispatch(price, dom.Event{Type: dom.EventBlur})
	if got := value(price); got != "99,90" {
		t.Fatalf("blur should format, got %q", got)
	}

	dom.SetAttr(price, "value", "n/a")
	doc.Dispatch(price, dom.Event{Type: dom.EventBlur})
	if value(price) != "" || value(raw) != "" {
		t.Fatalf("invalid input should clear both fields")
	}
}

func TestEnhancerBindIsIdempotent(t *testing.T) {
	doc, enhancer := newMoneyDoc(t)
	listeners := doc.Events().Len()
	if n := enhancer.Bind(doc); n != 0 {
		t.Fatalf("rebind bound %d inputs", n)
	}
	if doc.Events().Len() != listeners {
		t.Fatalf("listeners grew on rebind")
	}
	_ = enhancer.Close()
	if doc.Events().Len() != 0 {
		t.Fatalf("close left %d listeners", doc.Events().Len())
	}
}

func TestEnhancerZeroScaleWithoutRawMirror(t *testing.T) {
	doc, err := dom.ParseString(`<html><body><input id="qty" data-enhance="money" data-scale="0" value="1234"></body></html>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	enhancer := NewEnhancer()
	t.Cleanup(func() { _ = enhancer.Close() })
	if err := enhancer.Attach(doc); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := doc.Ready(); err != nil {
		t.Fatalf("ready: %v", err)
	}
	qty := doc.ElementByID("qty")
	if got := value(qty); got != "1.234" {
		t.Fatalf("display = %q", got)
	}

	doc.Dispatch(qty, dom.Event{Type: dom.EventFocus})
	if got := value(qty); got != "1234" {
		t.Fatalf("focus should show the edit text, got %q", got)
	}
	doc.Dispatch(qty, dom.Event{Type: dom.EventBlur})
	if got := value(qty); got != "1.234" {
		t.Fatalf("focus and blur changed the amount, got %q", got)
	}

	// A blur without a preceding focus sees the formatted text.
	doc.Dispatch(qty, dom.Event{Type: dom.EventBlur})
	field, _ := enhancer.Field(qty)
	if got := field.Canonical(); got != "1234" {
		t.Fatalf("canonical = %q", got)
	}
	if got := value(qty); got != "1.234" {
		t.Fatalf("display = %q", got)
	}
}

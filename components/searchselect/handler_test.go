package searchselect

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-enhancers"
	"github.com/goliatone/go-enhancers/pkg/catalog"
	"github.com/goliatone/go-enhancers/pkg/combobox"
	"github.com/goliatone/go-enhancers/pkg/dom"
	"github.com/goliatone/go-enhancers/pkg/testsupport"
	"github.com/goliatone/go-enhancers/pkg/toast"
)

func testCatalogs(t *testing.T) *catalog.Store {
	t.Helper()
	store := catalog.NewStore()
	err := store.Add(catalog.Catalog{
		ID:          "country",
		Label:       "Country",
		Placeholder: "Pick a country",
		Options: []combobox.Option{
			{Value: "us", Label: "United States"},
			{Value: "gb", Label: "United Kingdom"},
			{Value: "de", Label: "Germany"},
			{Value: "fr", Label: "France", Disabled: true},
		},
	})
	if err != nil {
		t.Fatalf("add catalog: %v", err)
	}
	return store
}

func newTestHandler(t *testing.T, fns ...OptionFn) http.Handler {
	t.Helper()
	base := []OptionFn{
		WithCatalogs(testCatalogs(t)),
		WithEnhancerOptions(enhancers.WithToastOptions(toast.WithTimeout(0))),
	}
	return NewHandler(append(base, fns...)...)
}

func openSession(t *testing.T, h http.Handler) (string, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/enhancers", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	id := rec.Header().Get(HeaderSession)
	if id == "" {
		t.Fatalf("missing %s header", HeaderSession)
	}
	return id, rec.Body.String()
}

func postEvent(t *testing.T, h http.Handler, id string, event EventRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/enhancers/"+id+"/events", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewSessionRendersEnhancedPage(t *testing.T) {
	h := newTestHandler(t, WithTitle("Signup"), WithFlash("Welcome back"))
	id, body := openSession(t, h)

	doc := testsupport.MustParseDocument(t, body)
	if got := dom.TextContent(dom.Find(doc.Root, dom.Element("title"))); got != "Signup" {
		t.Fatalf("unexpected title %q", got)
	}
	page := dom.Find(doc.Root, dom.Element("main"))
	if got := dom.AttrOr(page, "data-session", ""); got != id {
		t.Fatalf("data-session = %q, want %q", got, id)
	}
	if got := dom.AttrOr(page, "data-events", ""); got != "/enhancers/"+id+"/events" {
		t.Fatalf("data-events = %q", got)
	}
	input := dom.Find(doc.Root, dom.WithClass("input", "ss-input"))
	if input == nil {
		t.Fatalf("widget input missing:\n%s", body)
	}
	if got := dom.AttrOr(input, "role", ""); got != "combobox" {
		t.Fatalf("input role = %q", got)
	}
	if got := dom.AttrOr(input, "placeholder", ""); got != "Pick a country" {
		t.Fatalf("placeholder = %q", got)
	}
	if toasts := dom.FindAll(doc.ElementByID("toast-container"), dom.WithClass("div", "toast")); len(toasts) != 1 {
		t.Fatalf("expected flash toast, got %d", len(toasts))
	}
	link := dom.Find(doc.Root, dom.Element("link"))
	if got := dom.AttrOr(link, "href", ""); got != "/enhancers/assets/enhancers.css" {
		t.Fatalf("stylesheet href = %q", got)
	}
}

func TestEventsDriveWidget(t *testing.T) {
	h := newTestHandler(t)
	id, _ := openSession(t, h)

	rec := postEvent(t, h, id, EventRequest{Control: "country", Type: EventFocus})
	if rec.Code != http.StatusOK {
		t.Fatalf("focus: status %d", rec.Code)
	}
	rec = postEvent(t, h, id, EventRequest{Control: "country", Type: EventInput, Text: "united"})
	if rec.Code != http.StatusOK {
		t.Fatalf("input: status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html fragment, got %q", ct)
	}
	if rec.Header().Get(HeaderChange) != "" {
		t.Fatalf("typing must not fire a change")
	}
	fragment := testsupport.MustParseDocument(t, rec.Body.String())
	if diff := cmp.Diff([]string{"United States", "United Kingdom"}, testsupport.OptionRows(fragment.Root)); diff != "" {
		t.Fatalf("filtered rows mismatch (-want +got):\n%s", diff)
	}
	status := dom.Find(fragment.Root, dom.WithAttr("div", "role", "status"))
	if got := dom.TextContent(status); got != "2 options" {
		t.Fatalf("announcement = %q", got)
	}

	rec = postEvent(t, h, id, EventRequest{Control: "country", Type: EventClickOption, Value: "gb"})
	if rec.Code != http.StatusOK {
		t.Fatalf("click: status %d", rec.Code)
	}
	if got := rec.Header().Get(HeaderChange); got != "country" {
		t.Fatalf("%s = %q, want country", HeaderChange, got)
	}
	if got := rec.Header().Get(HeaderValue); got != "gb" {
		t.Fatalf("%s = %q, want gb", HeaderValue, got)
	}

	rec = postEvent(t, h, id, EventRequest{Control: "country", Type: EventClear})
	if got := rec.Header().Get(HeaderChange); got != "country" {
		t.Fatalf("clear should fire a change, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/enhancers/"+id+"/values", nil)
	vrec := httptest.NewRecorder()
	h.ServeHTTP(vrec, req)
	var payload valuesResponse
	if err := json.NewDecoder(vrec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode values: %v", err)
	}
	want := valuesResponse{
		Session: id,
		Values:  map[string]string{"country": ""},
		Changes: []string{"country", "country"},
	}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestKeyboardCommitAndOutsideClick(t *testing.T) {
	h := newTestHandler(t)
	id, _ := openSession(t, h)

	postEvent(t, h, id, EventRequest{Control: "country", Type: EventInput, Text: "ger"})
	rec := postEvent(t, h, id, EventRequest{Control: "country", Type: EventKeyDown, Key: "Enter"})
	if got := rec.Header().Get(HeaderValue); got != "de" {
		t.Fatalf("Enter committed %q, want de", got)
	}

	postEvent(t, h, id, EventRequest{Control: "country", Type: EventFocus})
	rec = postEvent(t, h, id, EventRequest{Control: "country", Type: EventClickOutside})
	fragment := testsupport.MustParseDocument(t, rec.Body.String())
	wrapper := dom.Find(fragment.Root, dom.WithClass("div", "searchable-select"))
	if dom.HasClass(wrapper, "open") {
		t.Fatalf("outside click should close the panel")
	}
	if rec.Header().Get(HeaderChange) != "" {
		t.Fatalf("outside click must not fire a change")
	}
}

func TestEventErrors(t *testing.T) {
	h := newTestHandler(t, WithMaxBodyBytes(64))
	id, _ := openSession(t, h)

	cases := []struct {
		name string
		id   string
		body string
		want int
	}{
		{name: "unknown session", id: "missing", body: `{"control":"country","type":"focus"}`, want: http.StatusNotFound},
		{name: "unknown control", id: id, body: `{"control":"nope","type":"focus"}`, want: http.StatusNotFound},
		{name: "bad type", id: id, body: `{"control":"country","type":"hover"}`, want: http.StatusBadRequest},
		{name: "bad json", id: id, body: `{`, want: http.StatusBadRequest},
		{name: "too large", id: id, body: `{"control":"country","type":"input","text":"` + strings.Repeat("x", 128) + `"}`, want: http.StatusRequestEntityTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/enhancers/"+tc.id+"/events", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)
	id, _ := openSession(t, h)

	req := httptest.NewRequest(http.MethodGet, "/enhancers/"+id+"/events", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}

func TestDeleteClosesSession(t *testing.T) {
	h := newTestHandler(t)
	id, _ := openSession(t, h)

	req := httptest.NewRequest(http.MethodDelete, "/enhancers/"+id, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/enhancers/"+id, nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", rec.Code)
	}
}

func TestSessionEviction(t *testing.T) {
	h := newTestHandler(t, WithMaxSessions(2))
	first, _ := openSession(t, h)
	openSession(t, h)
	third, _ := openSession(t, h)

	for id, want := range map[string]int{first: http.StatusNotFound, third: http.StatusOK} {
		req := httptest.NewRequest(http.MethodGet, "/enhancers/"+id, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("session %s: expected status %d, got %d", id, want, rec.Code)
		}
	}
}

func TestGuardError(t *testing.T) {
	h := newTestHandler(t, WithGuard(func(*http.Request) error {
		return StatusError{Code: http.StatusUnauthorized, Err: errors.New("login required")}
	}))
	req := httptest.NewRequest(http.MethodGet, "/enhancers", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	h = newTestHandler(t, WithGuard(func(*http.Request) error { return errors.New("nope") }))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/enhancers", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestAssetsServed(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/enhancers/assets/enhancers.css", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), ".searchable-select") {
		t.Fatalf("stylesheet body unexpected")
	}
}

package combobox

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recordingSurface struct {
	mu      sync.Mutex
	effects []Effect
	fail    error
}

func (r *recordingSurface) Apply(effect Effect) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects = append(r.effects, effect)
	return r.fail
}

func (r *recordingSurface) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects = nil
}

func newCountrySource(opts ...StaticOption) *StaticSource {
	return NewStaticSource(countries(), append([]StaticOption{WithSelected("")}, opts...)...)
}

func TestNewControllerRequiresCollaborators(t *testing.T) {
	if _, err := NewController(nil, &recordingSurface{}); !errors.Is(err, ErrNilSource) {
		t.Fatalf("expected ErrNilSource, got %v", err)
	}
	if _, err := NewController(newCountrySource(), nil); !errors.Is(err, ErrNilSurface) {
		t.Fatalf("expected ErrNilSurface, got %v", err)
	}
}

func TestControllerCommitNotifiesOnce(t *testing.T) {
	source := newCountrySource()
	var changes []string
	source.OnChange(func(value string) { changes = append(changes, value) })

	surface := &recordingSurface{}
	ctrl, err := NewController(source, surface)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	for _, event := range []Event{Focus{}, Input{Text: "u"}, KeyDown{Key: KeyEnter}} {
		if err := ctrl.Dispatch(event); err != nil {
			t.Fatalf("dispatch %T: %v", event, err)
		}
	}

	if value, _ := source.SelectedValue(); value != "US" {
		t.Fatalf("expected US selected, got %q", value)
	}
	if diff := cmp.Diff([]string{"US"}, changes); diff != "" {
		t.Fatalf("change notifications mismatch (-want +got):\n%s", diff)
	}
	if ctrl.State().Open {
		t.Fatalf("expected closed after commit")
	}
}

func TestControllerClearNotifiesOnce(t *testing.T) {
	source := NewStaticSource(countries(), WithSelected("CA"))
	var changes []string
	source.OnChange(func(value string) { changes = append(changes, value) })

	surface := &recordingSurface{}
	ctrl, err := NewController(source, surface)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	surface.reset()

	if err := ctrl.Dispatch(Clear{}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if value, ok := source.SelectedValue(); !ok || value != "" {
		t.Fatalf("expected placeholder selected, got %q (%v)", value, ok)
	}
	if diff := cmp.Diff([]string{""}, changes); diff != "" {
		t.Fatalf("change notifications mismatch (-want +got):\n%s", diff)
	}
	for _, effect := range surface.effects {
		switch effect.(type) {
		case Select, NotifyChange:
			t.Fatalf("source effect %T leaked to surface", effect)
		}
	}
}

func TestControllerSeedsInputText(t *testing.T) {
	surface := &recordingSurface{}
	if _, err := NewController(NewStaticSource(countries(), WithSelected("BR")), surface); err != nil {
		t.Fatalf("new controller: %v", err)
	}
	want := []Effect{SetExpanded{Open: false}, SetInputText{Text: "Brazil"}}
	if diff := cmp.Diff(want, surface.effects); diff != "" {
		t.Fatalf("initial effects mismatch (-want +got):\n%s", diff)
	}
}

func TestControllerDisabledNeverOpens(t *testing.T) {
	surface := &recordingSurface{}
	ctrl, err := NewController(newCountrySource(WithDisabled(true)), surface)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	if err := ctrl.Dispatch(Focus{}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if ctrl.State().Open {
		t.Fatalf("disabled widget opened on focus")
	}
}

func TestControllerSurfaceErrorStillAdvancesState(t *testing.T) {
	surface := &recordingSurface{}
	ctrl, err := NewController(newCountrySource(), surface)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	surface.fail = errors.New("boom")

	err = ctrl.Dispatch(Focus{})
	if err == nil {
		t.Fatalf("expected surface error")
	}
	if !ctrl.State().Open {
		t.Fatalf("state must advance despite surface error")
	}
}

func TestControllerSerializesConcurrentDispatch(t *testing.T) {
	source := newCountrySource()
	var mu sync.Mutex
	changes := 0
	source.OnChange(func(string) {
		mu.Lock()
		changes++
		mu.Unlock()
	})
	ctrl, err := NewController(source, &recordingSurface{})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ctrl.Dispatch(Focus{})
			_ = ctrl.Dispatch(KeyDown{Key: KeyEnter})
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if changes != 20 {
		t.Fatalf("expected 20 commits, got %d", changes)
	}
}

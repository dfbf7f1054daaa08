package combobox

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func withSelected(options []Option, value string) []Option {
	out := make([]Option, len(options))
	for idx, option := range options {
		option.Selected = option.Value == value
		out[idx] = option
	}
	return out
}

func TestInitialSeedsInputFromSelection(t *testing.T) {
	state, effects := Initial(withSelected(countries(), "CA"), false)
	if state.Open {
		t.Fatalf("expected closed initial state")
	}
	if state.Query != "Canada" {
		t.Fatalf("expected query seeded from selection, got %q", state.Query)
	}
	want := []Effect{SetExpanded{Open: false}, SetInputText{Text: "Canada"}}
	if diff := cmp.Diff(want, effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}
}

func TestInitialIgnoresDisabledPlaceholder(t *testing.T) {
	state, effects := Initial(withSelected(countries(), ""), false)
	if state.Query != "" {
		t.Fatalf("placeholder must not seed the input, got %q", state.Query)
	}
	if diff := cmp.Diff([]Effect{SetExpanded{Open: false}}, effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}
}

func TestFocusOpensWithAllEnabledOptions(t *testing.T) {
	source := withSelected(countries(), "")
	state, _ := Initial(source, false)

	state, effects := Reduce(state, source, Focus{})
	if !state.Open {
		t.Fatalf("expected open after focus")
	}
	if state.FocusedIndex != NoOption {
		t.Fatalf("expected input focus, got %d", state.FocusedIndex)
	}
	want := []Effect{
		RenderOptions{Options: Filter(source, ""), Selected: ""},
		Announce{Count: 3},
		SetExpanded{Open: true},
	}
	if diff := cmp.Diff(want, effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}
}

func TestInputFiltersAndEnterCommitsFirst(t *testing.T) {
	source := withSelected(countries(), "")
	state, _ := Initial(source, false)

	state, _ = Reduce(state, source, Input{Text: "u"})
	if !state.Open {
		t.Fatalf("typing must open the panel")
	}
	if diff := cmp.Diff([]Option{{Value: "US", Label: "United States"}}, state.Filtered); diff != "" {
		t.Fatalf("filtered mismatch (-want +got):\n%s", diff)
	}

	state, effects := Reduce(state, source, KeyDown{Key: KeyEnter})
	want := []Effect{
		Select{Value: "US"},
		SetInputText{Text: "United States"},
		NotifyChange{},
		SetExpanded{Open: false},
	}
	if diff := cmp.Diff(want, effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}
	if state.Open || state.Query != "United States" {
		t.Fatalf("unexpected state after commit: %+v", state)
	}
}

func TestEnterWithEmptyResultDoesNothing(t *testing.T) {
	source := countries()
	state, _ := Initial(source, false)
	state, _ = Reduce(state, source, Input{Text: "zzz"})

	next, effects := Reduce(state, source, KeyDown{Key: KeyEnter})
	if len(effects) != 0 {
		t.Fatalf("expected no effects, got %#v", effects)
	}
	if !next.Open {
		t.Fatalf("panel must stay open")
	}
}

func TestEnterWhileClosedCommitsFirstMatch(t *testing.T) {
	source := countries()
	state, _ := Initial(source, false)
	state.Query = "can"

	state, effects := Reduce(state, source, KeyDown{Key: KeyEnter})
	want := []Effect{
		Select{Value: "CA"},
		SetInputText{Text: "Canada"},
		NotifyChange{},
	}
	if diff := cmp.Diff(want, effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}
	if state.Open {
		t.Fatalf("expected closed state")
	}
}

func TestArrowNavigationClampsAndReturnsToInput(t *testing.T) {
	source := countries()
	state, _ := Initial(source, false)
	state, _ = Reduce(state, source, Focus{})

	state, effects := Reduce(state, source, KeyDown{Key: KeyArrowDown})
	if state.FocusedIndex != 0 {
		t.Fatalf("expected index 0, got %d", state.FocusedIndex)
	}
	if diff := cmp.Diff([]Effect{FocusOption{Index: 0, Value: "BR"}}, effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}

	state, _ = Reduce(state, source, KeyDown{Key: KeyArrowDown})
	state, _ = Reduce(state, source, KeyDown{Key: KeyArrowDown})
	if state.FocusedIndex != 2 {
		t.Fatalf("expected index 2, got %d", state.FocusedIndex)
	}
	state, effects = Reduce(state, source, KeyDown{Key: KeyArrowDown})
	if state.FocusedIndex != 2 || len(effects) != 0 {
		t.Fatalf("expected clamp at last option, got index %d effects %#v", state.FocusedIndex, effects)
	}

	state, _ = Reduce(state, source, KeyDown{Key: KeyArrowUp})
	state, _ = Reduce(state, source, KeyDown{Key: KeyArrowUp})
	if state.FocusedIndex != 0 {
		t.Fatalf("expected index 0, got %d", state.FocusedIndex)
	}

	state, effects = Reduce(state, source, KeyDown{Key: KeyArrowUp})
	if state.FocusedIndex != NoOption {
		t.Fatalf("ArrowUp at index 0 must return to the input, got %d", state.FocusedIndex)
	}
	if diff := cmp.Diff([]Effect{FocusInput{}}, effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}
	if !state.Open {
		t.Fatalf("panel must stay open")
	}
}

func TestArrowDownWhileClosedOpensAndFocusesFirst(t *testing.T) {
	source := countries()
	state, _ := Initial(source, false)

	state, effects := Reduce(state, source, KeyDown{Key: KeyArrowDown})
	if !state.Open || state.FocusedIndex != 0 {
		t.Fatalf("unexpected state: %+v", state)
	}
	last := effects[len(effects)-1]
	if diff := cmp.Diff(FocusOption{Index: 0, Value: "BR"}, last); diff != "" {
		t.Fatalf("last effect mismatch (-want +got):\n%s", diff)
	}
}

func TestEnterOnFocusedOptionCommitsIt(t *testing.T) {
	source := countries()
	state, _ := Initial(source, false)
	state, _ = Reduce(state, source, Focus{})
	state, _ = Reduce(state, source, KeyDown{Key: KeyArrowDown})
	state, _ = Reduce(state, source, KeyDown{Key: KeyArrowDown})

	state, effects := Reduce(state, source, KeyDown{Key: KeyEnter})
	if got := effects[0]; got != (Select{Value: "US"}) {
		t.Fatalf("expected commit of US, got %#v", got)
	}
	if state.Open || state.FocusedIndex != NoOption {
		t.Fatalf("unexpected state after commit: %+v", state)
	}
}

func TestEscapeFromOptionRefocusesInput(t *testing.T) {
	source := countries()
	state, _ := Initial(source, false)
	state, _ = Reduce(state, source, Focus{})
	state, _ = Reduce(state, source, KeyDown{Key: KeyArrowDown})

	state, effects := Reduce(state, source, KeyDown{Key: KeyEscape})
	want := []Effect{SetExpanded{Open: false}, FocusInput{}}
	if diff := cmp.Diff(want, effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}
	if state.Open || state.FocusedIndex != NoOption {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestClickOutsideCloses(t *testing.T) {
	source := countries()
	state, _ := Initial(source, false)

	_, effects := Reduce(state, source, ClickOutside{})
	if len(effects) != 0 {
		t.Fatalf("closed widget must ignore outside clicks, got %#v", effects)
	}

	state, _ = Reduce(state, source, Focus{})
	state, effects = Reduce(state, source, ClickOutside{})
	if state.Open {
		t.Fatalf("expected closed")
	}
	if diff := cmp.Diff([]Effect{SetExpanded{Open: false}}, effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}
}

func TestClickOptionCommits(t *testing.T) {
	source := countries()
	state, _ := Initial(source, false)
	state, _ = Reduce(state, source, Focus{})

	state, effects := Reduce(state, source, ClickOption{Value: "CA"})
	if effects[0] != (Select{Value: "CA"}) {
		t.Fatalf("expected commit of CA, got %#v", effects)
	}
	if state.Open {
		t.Fatalf("expected closed after commit")
	}
}

func TestInvalidCommitTargetIsNoop(t *testing.T) {
	source := countries()
	state, _ := Initial(source, false)
	state, _ = Reduce(state, source, Focus{})

	next, effects := Reduce(state, source, ClickOption{Value: "MX"})
	if len(effects) != 0 {
		t.Fatalf("unknown value must not commit, got %#v", effects)
	}
	if !next.Open {
		t.Fatalf("state must be unchanged")
	}

	// The control lost "BR" after the panel rendered.
	mutated := []Option{countries()[0], countries()[2], countries()[3]}
	next, effects = Reduce(state, mutated, ClickOption{Value: "BR"})
	if len(effects) != 0 {
		t.Fatalf("stale value must not commit, got %#v", effects)
	}
	if diff := cmp.Diff(state, next); diff != "" {
		t.Fatalf("state changed (-want +got):\n%s", diff)
	}
}

func TestClearResetsWithoutOpening(t *testing.T) {
	source := withSelected(countries(), "BR")
	state, _ := Initial(source, false)

	state, effects := Reduce(state, source, Clear{})
	want := []Effect{
		Select{Value: ""},
		SetInputText{Text: ""},
		NotifyChange{},
		RenderOptions{Options: Filter(source, ""), Selected: ""},
		Announce{Count: 3},
		FocusInput{},
	}
	if diff := cmp.Diff(want, effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}
	if state.Open {
		t.Fatalf("clear must not open the panel")
	}
	if state.Query != "" || len(state.Filtered) != 3 {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestDisabledWidgetIsInert(t *testing.T) {
	source := countries()
	state, _ := Initial(source, true)

	events := []Event{
		Focus{},
		Input{Text: "b"},
		KeyDown{Key: KeyArrowDown},
		KeyDown{Key: KeyEnter},
		ClickOption{Value: "BR"},
		Clear{},
	}
	for _, event := range events {
		next, effects := Reduce(state, source, event)
		if next.Open {
			t.Fatalf("%T opened a disabled widget", event)
		}
		if len(effects) != 0 {
			t.Fatalf("%T produced effects on a disabled widget: %#v", event, effects)
		}
	}
}

func TestReduceDoesNotAliasFiltered(t *testing.T) {
	source := countries()
	state, _ := Initial(source, false)
	state, _ = Reduce(state, source, Focus{})
	snapshot := state.Clone()

	_, _ = Reduce(state, source, Input{Text: "bra"})
	if diff := cmp.Diff(snapshot, state); diff != "" {
		t.Fatalf("reducer mutated its input (-want +got):\n%s", diff)
	}
}

func TestInputWhileOptionFocusedReturnsFocusToInput(t *testing.T) {
	source := countries()
	state, _ := Initial(source, false)
	state, _ = Reduce(state, source, Focus{})
	state, _ = Reduce(state, source, KeyDown{Key: KeyArrowDown})
	state, _ = Reduce(state, source, KeyDown{Key: KeyArrowDown})

	state, effects := Reduce(state, source, Input{Text: "united"})
	if state.FocusedIndex != NoOption {
		t.Fatalf("expected input focus, got %d", state.FocusedIndex)
	}
	want := []Effect{
		RenderOptions{Options: Filter(source, "united"), Selected: ""},
		Announce{Count: 1},
		FocusInput{},
	}
	if diff := cmp.Diff(want, effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}
}

func TestFocusWhileOpenDropsOptionFocus(t *testing.T) {
	source := countries()
	state, _ := Initial(source, false)
	state, _ = Reduce(state, source, Focus{})

	_, effects := Reduce(state, source, Focus{})
	if len(effects) != 0 {
		t.Fatalf("refocusing the input must be quiet, got %#v", effects)
	}

	state, _ = Reduce(state, source, KeyDown{Key: KeyArrowDown})
	state, effects = Reduce(state, source, Focus{})
	if state.FocusedIndex != NoOption || !state.Open {
		t.Fatalf("unexpected state: %+v", state)
	}
	if diff := cmp.Diff([]Effect{FocusInput{}}, effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}
}

package combobox

import "testing"

func TestStaticSourceDefaultsToFirstEnabled(t *testing.T) {
	source := NewStaticSource(countries())
	if value, _ := source.SelectedValue(); value != "BR" {
		t.Fatalf("expected BR, got %q", value)
	}
}

func TestStaticSourceRejectsDisabledAndUnknown(t *testing.T) {
	source := NewStaticSource(countries(), WithSelected("US"))

	source.SetSelectedValue("MX")
	if value, _ := source.SelectedValue(); value != "US" {
		t.Fatalf("unknown value changed selection to %q", value)
	}

	options := append(countries(), Option{Value: "XX", Label: "Closed", Disabled: true})
	source.SetOptions(options)
	source.SetSelectedValue("XX")
	if value, _ := source.SelectedValue(); value != "US" {
		t.Fatalf("disabled value changed selection to %q", value)
	}
}

func TestStaticSourceEmptyValueWithoutPlaceholder(t *testing.T) {
	source := NewStaticSource([]Option{{Value: "a", Label: "A"}})
	source.SetSelectedValue("")
	if value, ok := source.SelectedValue(); ok || value != "" {
		t.Fatalf("expected no selection, got %q (%v)", value, ok)
	}
	for _, option := range source.Options() {
		if option.Selected {
			t.Fatalf("option %q still selected", option.Value)
		}
	}
}

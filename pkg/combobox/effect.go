package combobox

// Effect is an instruction produced by Reduce. Select and NotifyChange target
// the Source; everything else is for the Surface.
type Effect interface {
	isEffect()
}

// Select writes value to the native control.
type Select struct {
	Value string
}

// NotifyChange fires the native control's change notification.
type NotifyChange struct{}

// SetInputText replaces the text shown in the filter input.
type SetInputText struct {
	Text string
}

// SetExpanded shows or hides the options panel.
type SetExpanded struct {
	Open bool
}

// RenderOptions replaces the rendered option rows. Selected is the committed
// value at render time, used to mark the matching row.
type RenderOptions struct {
	Options  []Option
	Selected string
}

// Announce pushes the result count to the live region.
type Announce struct {
	Count int
}

// FocusInput moves keyboard focus to the filter input.
type FocusInput struct{}

// FocusOption moves keyboard focus to the filtered option at Index.
type FocusOption struct {
	Index int
	Value string
}

func (Select) isEffect()        {}
func (NotifyChange) isEffect()  {}
func (SetInputText) isEffect()  {}
func (SetExpanded) isEffect()   {}
func (RenderOptions) isEffect() {}
func (Announce) isEffect()      {}
func (FocusInput) isEffect()    {}
func (FocusOption) isEffect()   {}

package combobox

// Key names the keyboard keys the machine reacts to. Values match the DOM
// KeyboardEvent.key names so hosts can pass them through.
type Key string

const (
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
)

// Event is a user interaction delivered by a host.
type Event interface {
	isEvent()
}

// Focus reports that the filter input received focus.
type Focus struct{}

// Input reports the full text of the filter input after a keystroke.
type Input struct {
	Text string
}

// KeyDown reports a key press while the input or an option has focus. The
// machine tracks which one through State.FocusedIndex.
type KeyDown struct {
	Key Key
}

// ClickOption reports a click on a rendered option.
type ClickOption struct {
	Value string
}

// ClickOutside reports a click whose target lies outside the widget.
type ClickOutside struct{}

// Clear reports activation of the clear affordance.
type Clear struct{}

func (Focus) isEvent()        {}
func (Input) isEvent()        {}
func (KeyDown) isEvent()      {}
func (ClickOption) isEvent()  {}
func (ClickOutside) isEvent() {}
func (Clear) isEvent()        {}

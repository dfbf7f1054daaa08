package combobox

import "errors"

var (
	// ErrNilSource is returned when a controller is built without a Source.
	ErrNilSource = errors.New("combobox: source is required")
	// ErrNilSurface is returned when a controller is built without a Surface.
	ErrNilSurface = errors.New("combobox: surface is required")
)

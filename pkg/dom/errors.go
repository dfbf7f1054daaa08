package dom

import "errors"

var (
	// ErrNilDocument is returned when an operation receives a nil document.
	ErrNilDocument = errors.New("dom: document is nil")
	// ErrNotSelect is returned when a select adapter wraps another element.
	ErrNotSelect = errors.New("dom: node is not a select element")
)

package enhance

import "errors"

var (
	// ErrMissingCollaborator reports that the rendered widget template lacks
	// one of the elements the widget drives.
	ErrMissingCollaborator = errors.New("enhance: missing collaborator")
	// ErrEmptyTemplate reports that the widget template rendered no element.
	ErrEmptyTemplate = errors.New("enhance: widget template rendered no element")
)

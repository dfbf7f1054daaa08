package catalog

import "errors"

var (
	// ErrEmptyID reports a catalog declared without an identifier.
	ErrEmptyID = errors.New("catalog: empty catalog id")
	// ErrDuplicate reports two catalogs sharing an identifier.
	ErrDuplicate = errors.New("catalog: duplicate catalog")
	// ErrNotFound reports a lookup for an unknown catalog.
	ErrNotFound = errors.New("catalog: not found")
)

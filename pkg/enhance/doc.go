// Package enhance turns native <select data-enhance="searchable-select">
// controls into searchable comboboxes.
//
// A Manager keeps a registry of enhanced controls. Each control gets a Widget
// rendered from a pongo2 template and wired to the document event bus; the
// native select stays in the document as the form's source of truth, wrapped
// by a combobox.SelectAdapter. Running Enhance twice is safe: registered
// controls and controls carrying data-enhanced="1" are skipped.
package enhance

// Package combobox implements the searchable-select state machine.
//
// The machine is a pure reducer: Reduce takes the current State, the live
// option list read from a Source, and an Event, and returns the next State plus
// the Effects a rendering layer must apply. Controller glues the reducer to a
// Source (the native control that a form submits) and a Surface (whatever draws
// the widget: an HTML document, a terminal, a test recorder).
//
// Typical wiring:
//
//	source := combobox.NewStaticSource(options)
//	ctrl, err := combobox.NewController(source, surface)
//	if err != nil {
//		return err
//	}
//	_ = ctrl.Dispatch(combobox.Focus{})
//	_ = ctrl.Dispatch(combobox.Input{Text: "bra"})
//	_ = ctrl.Dispatch(combobox.KeyDown{Key: combobox.KeyEnter})
package combobox

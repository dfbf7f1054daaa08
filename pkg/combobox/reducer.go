package combobox

// Initial builds the Closed state for a freshly enhanced control. The filter
// text is seeded from the selected option unless that option is disabled (a
// placeholder such as "Select...").
func Initial(source []Option, disabled bool) (State, []Effect) {
	state := State{
		FocusedIndex: NoOption,
		Disabled:     disabled,
	}
	effects := []Effect{SetExpanded{Open: false}}
	if selected, ok := selectedOption(source); ok && !selected.Disabled {
		state.Query = selected.Label
		effects = append(effects, SetInputText{Text: selected.Label})
	}
	return state, effects
}

// Reduce applies event to state. source is the live option list of the native
// control at the time of the event. The returned state never aliases the input
// state's Filtered slice.
func Reduce(state State, source []Option, event Event) (State, []Effect) {
	next := state.Clone()
	if next.Disabled {
		return next, nil
	}

	switch ev := event.(type) {
	case Focus:
		if next.Open {
			if next.FocusedIndex == NoOption {
				return next, nil
			}
			next.FocusedIndex = NoOption
			return next, []Effect{FocusInput{}}
		}
		return openPanel(next, source)

	case Input:
		next.Query = ev.Text
		return openPanel(next, source)

	case KeyDown:
		return reduceKey(next, source, ev.Key)

	case ClickOption:
		if !next.Open {
			return next, nil
		}
		option, ok := findOption(next.Filtered, ev.Value)
		if !ok {
			return next, nil
		}
		return commit(next, source, option)

	case ClickOutside:
		if !next.Open {
			return next, nil
		}
		return closePanel(next, false)

	case Clear:
		return clearSelection(next, source)
	}

	return next, nil
}

func reduceKey(state State, source []Option, key Key) (State, []Effect) {
	switch key {
	case KeyArrowDown:
		var effects []Effect
		if !state.Open {
			state, effects = openPanel(state, source)
		}
		if len(state.Filtered) == 0 {
			return state, effects
		}
		switch {
		case state.FocusedIndex == NoOption:
			state.FocusedIndex = 0
		case state.FocusedIndex < len(state.Filtered)-1:
			state.FocusedIndex++
		default:
			return state, effects
		}
		return state, append(effects, focusOption(state))

	case KeyArrowUp:
		if !state.Open || state.FocusedIndex == NoOption {
			return state, nil
		}
		if state.FocusedIndex == 0 {
			state.FocusedIndex = NoOption
			return state, []Effect{FocusInput{}}
		}
		state.FocusedIndex--
		return state, []Effect{focusOption(state)}

	case KeyEnter:
		if option, ok := state.FocusedOption(); ok && state.Open {
			return commit(state, source, option)
		}
		candidates := state.Filtered
		if !state.Open {
			candidates = Filter(source, state.Query)
		}
		if len(candidates) == 0 {
			if !state.Open {
				return openPanel(state, source)
			}
			return state, nil
		}
		return commit(state, source, candidates[0])

	case KeyEscape:
		if !state.Open {
			return state, nil
		}
		return closePanel(state, state.FocusedIndex != NoOption)
	}
	return state, nil
}

func openPanel(state State, source []Option) (State, []Effect) {
	state, effects := refilter(state, source)
	if !state.Open {
		state.Open = true
		effects = append(effects, SetExpanded{Open: true})
	}
	return state, effects
}

func closePanel(state State, refocusInput bool) (State, []Effect) {
	state.Open = false
	state.FocusedIndex = NoOption
	effects := []Effect{SetExpanded{Open: false}}
	if refocusInput {
		effects = append(effects, FocusInput{})
	}
	return state, effects
}

// refilter drops any option focus, since the rows it indexed are replaced.
func refilter(state State, source []Option) (State, []Effect) {
	hadOptionFocus := state.FocusedIndex != NoOption
	state.Filtered = Filter(source, state.Query)
	state.FocusedIndex = NoOption
	selected, _ := selectedOption(source)
	effects := []Effect{
		RenderOptions{Options: append([]Option(nil), state.Filtered...), Selected: selected.Value},
		Announce{Count: len(state.Filtered)},
	}
	if hadOptionFocus {
		effects = append(effects, FocusInput{})
	}
	return state, effects
}

// commit re-validates the target against the live source so that a control
// mutated since the last render cannot commit a stale or disabled value.
func commit(state State, source []Option, target Option) (State, []Effect) {
	live, ok := findOption(source, target.Value)
	if !ok || live.Disabled {
		return state, nil
	}
	effects := []Effect{
		Select{Value: live.Value},
		SetInputText{Text: live.Label},
		NotifyChange{},
	}
	state.Query = live.Label
	state.FocusedIndex = NoOption
	if state.Open {
		state.Open = false
		effects = append(effects, SetExpanded{Open: false})
	}
	return state, effects
}

func clearSelection(state State, source []Option) (State, []Effect) {
	state.Query = ""
	state.Filtered = Filter(source, "")
	state.FocusedIndex = NoOption
	return state, []Effect{
		Select{Value: ""},
		SetInputText{Text: ""},
		NotifyChange{},
		RenderOptions{Options: append([]Option(nil), state.Filtered...), Selected: ""},
		Announce{Count: len(state.Filtered)},
		FocusInput{},
	}
}

func focusOption(state State) Effect {
	return FocusOption{Index: state.FocusedIndex, Value: state.Filtered[state.FocusedIndex].Value}
}

func selectedOption(options []Option) (Option, bool) {
	for _, option := range options {
		if option.Selected {
			return option, true
		}
	}
	return Option{}, false
}

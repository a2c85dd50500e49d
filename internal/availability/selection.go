package availability

import "time"

// Selection models the two-click range picker: the first pick sets the start,
// the second sets the end. Picking a date earlier than the chosen start
// resets the selection to that date instead of erroring, which is the more
// forgiving behavior for the calendar UI.
type Selection struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Pick records a date choice and returns the updated selection.
func (s Selection) Pick(date time.Time) Selection {
	day := StartOfDay(date)

	switch {
	case s.Start == nil:
		return Selection{Start: &day}
	case day.Before(*s.Start):
		// Earlier than the current start: restart the selection there.
		return Selection{Start: &day}
	case s.End != nil:
		// Range already complete: a further pick starts a fresh one.
		return Selection{Start: &day}
	default:
		return Selection{Start: s.Start, End: &day}
	}
}

// Complete reports whether both endpoints have been chosen.
func (s Selection) Complete() bool {
	return s.Start != nil && s.End != nil
}

// Range returns the chosen endpoints; only meaningful when Complete.
func (s Selection) Range() (start, end time.Time) {
	if s.Start != nil {
		start = *s.Start
	}
	if s.End != nil {
		end = *s.End
	}
	return start, end
}

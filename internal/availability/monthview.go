package availability

import "time"

// DayCell is one cell of the calendar month grid the UI renders.
type DayCell struct {
	Date           time.Time `json:"date"`
	Class          DayClass  `json:"classification"`
	InCurrentMonth bool      `json:"in_current_month"`
	Selectable     bool      `json:"selectable"`
}

// BuildMonthView computes the calendar grid for the month containing anchor.
// The grid covers whole weeks, Sunday first, so the leading and trailing
// cells of adjacent months are included with InCurrentMonth=false. A cell is
// selectable when it belongs to the anchor month, is not in the past and is
// not fully booked.
//
// Pure function of its inputs: navigating months only needs a recompute, not
// a re-fetch of the interval snapshot.
func BuildMonthView(anchor time.Time, now time.Time, approved, pending []Interval, hours OperatingHours) []DayCell {
	monthStart := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, int(time.Saturday-monthEnd.Weekday()))

	today := StartOfDay(now)

	var cells []DayCell
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		class := ClassifyDay(day, approved, pending, hours)
		inMonth := day.Month() == monthStart.Month() && day.Year() == monthStart.Year()
		cells = append(cells, DayCell{
			Date:           day,
			Class:          class,
			InCurrentMonth: inMonth,
			Selectable:     inMonth && !day.Before(today) && class != DayFullyBooked,
		})
	}
	return cells
}

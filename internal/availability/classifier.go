package availability

import "time"

// DayClass is the derived occupancy status of one calendar day on one bench.
type DayClass string

const (
	DayFree            DayClass = "FREE"
	DayPartiallyBooked DayClass = "PARTIALLY_BOOKED"
	DayFullyBooked     DayClass = "FULLY_BOOKED"
	DayPending         DayClass = "PENDING"
)

// OperatingHours is the configured daily hour range during which a bench may
// be booked. Both bounds are inclusive: {Open: 8, Close: 19} means the 08:00
// through 19:00 slots are bookable.
type OperatingHours struct {
	Open  int `json:"open"`
	Close int `json:"close"`
}

// DefaultOperatingHours matches the lab's standard bench schedule.
var DefaultOperatingHours = OperatingHours{Open: 8, Close: 19}

// HourCount returns the number of bookable hour slots in the range.
func (h OperatingHours) HourCount() int {
	if h.Close < h.Open {
		return 0
	}
	return h.Close - h.Open + 1
}

// ClassifyDay computes the occupancy class of a single calendar day from the
// interval snapshot. Precedence when multiple conditions hold:
// FULLY_BOOKED > PARTIALLY_BOOKED > PENDING > FREE. Approved coverage
// dominates the display of pending overlaps; use PendingOverlapsDay when the
// pending flag is needed independently of the class.
func ClassifyDay(day time.Time, approved, pending []Interval, hours OperatingHours) DayClass {
	dayIv := dayInterval(day)

	covered := make(map[int]bool)
	for _, iv := range approved {
		if !Overlaps(iv, dayIv) {
			continue
		}
		// A single approved interval spanning the whole day wins outright.
		if !iv.Start.After(dayIv.Start) && !iv.End.Before(dayIv.End) {
			return DayFullyBooked
		}
		for _, h := range coveredHours(iv, dayIv, hours) {
			covered[h] = true
		}
	}

	switch {
	case len(covered) >= hours.HourCount() && hours.HourCount() > 0:
		return DayFullyBooked
	case len(covered) > 0:
		return DayPartiallyBooked
	case PendingOverlapsDay(day, pending):
		return DayPending
	default:
		return DayFree
	}
}

// PendingOverlapsDay reports whether any pending interval touches the day.
// Exposed separately because a day can be PARTIALLY_BOOKED and still carry a
// pending overlap the range validator must warn about.
func PendingOverlapsDay(day time.Time, pending []Interval) bool {
	dayIv := dayInterval(day)
	for _, iv := range pending {
		if Overlaps(iv, dayIv) {
			return true
		}
	}
	return false
}

// coveredHours returns the operating-hour slots the interval occupies within
// the given day. The interval is clamped to the day first so multi-day spans
// contribute the correct hours on their middle and edge days.
func coveredHours(iv, dayIv Interval, hours OperatingHours) []int {
	effStart := iv.Start
	if effStart.Before(dayIv.Start) {
		effStart = dayIv.Start
	}
	effEnd := iv.End
	if effEnd.After(dayIv.End) {
		effEnd = dayIv.End
	}

	from := effStart.Hour()
	if from < hours.Open {
		from = hours.Open
	}
	to := effEnd.Hour()
	if to > hours.Close {
		to = hours.Close
	}

	var out []int
	for h := from; h <= to; h++ {
		out = append(out, h)
	}
	return out
}

package availability

import "time"

// ReasonCode identifies why a proposed range was rejected. These are
// expected, recoverable outcomes returned as values; the calling UI branches
// on them and shows a corrective message.
type ReasonCode string

const (
	ReasonInvalidOrder ReasonCode = "INVALID_ORDER"
	ReasonPastDate     ReasonCode = "PAST_DATE"
	ReasonConflict     ReasonCode = "CONFLICT"
)

// Warning flags attached to an accepted range.
type Warning string

// WarningPendingOverlap signals that part of the range overlaps an
// unapproved request and may be bumped if that request is approved first.
// It is informational and never blocks submission.
const WarningPendingOverlap Warning = "PENDING_OVERLAP"

// RangeResult is the outcome of validating a proposed reservation range.
type RangeResult struct {
	Accepted    bool       `json:"accepted"`
	Reason      ReasonCode `json:"reason_code,omitempty"`
	ConflictDay *time.Time `json:"conflict_day,omitempty"`
	Warning     Warning    `json:"warning,omitempty"`
}

// ValidateRange checks a proposed [start, end] reservation against the
// interval snapshot. Rules are applied in order and the first failure wins:
//
//  1. end before start               -> INVALID_ORDER
//  2. start before today             -> PAST_DATE (today itself is allowed)
//  3. any day fully booked           -> CONFLICT, naming the earliest such day
//  4. pending overlap somewhere      -> accepted with PENDING_OVERLAP warning
//  5. otherwise                      -> accepted cleanly
//
// The conflict day is found by a left-to-right scan over calendar days, so
// repeated calls with the same inputs always report the same day regardless
// of interval ordering. This validation is advisory: the hard guarantee that
// no two approved reservations overlap is enforced at approval time by the
// request store.
func ValidateRange(start, end time.Time, approved, pending []Interval, now time.Time, hours OperatingHours) RangeResult {
	if end.Before(start) {
		return RangeResult{Accepted: false, Reason: ReasonInvalidOrder}
	}
	if start.Before(StartOfDay(now)) {
		return RangeResult{Accepted: false, Reason: ReasonPastDate}
	}

	pendingOverlap := false
	for day := StartOfDay(start); !day.After(StartOfDay(end)); day = day.AddDate(0, 0, 1) {
		if ClassifyDay(day, approved, pending, hours) == DayFullyBooked {
			d := day
			return RangeResult{Accepted: false, Reason: ReasonConflict, ConflictDay: &d}
		}
		if PendingOverlapsDay(day, pending) {
			pendingOverlap = true
		}
	}

	if pendingOverlap {
		return RangeResult{Accepted: true, Warning: WarningPendingOverlap}
	}
	return RangeResult{Accepted: true}
}

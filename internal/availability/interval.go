// Package availability implements the pure scheduling core: interval overlap,
// per-day occupancy classification, proposed-range validation and calendar
// month view construction. It performs no I/O; callers hand it an in-memory
// snapshot of reservation intervals fetched from the request store.
package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IntervalStatus is the lifecycle state of a reservation interval. Rejected
// and cancelled requests are excluded from the active set upstream, so the
// engine only ever sees APPROVED and PENDING.
type IntervalStatus string

const (
	StatusApproved IntervalStatus = "APPROVED"
	StatusPending  IntervalStatus = "PENDING"
)

func (s IntervalStatus) IsValid() bool {
	switch s {
	case StatusApproved, StatusPending:
		return true
	}
	return false
}

// Interval is one booked or requested span of time on one bench.
// Invariant: Start <= End (enforced by ParseInterval / NewInterval).
type Interval struct {
	BenchID uuid.UUID      `json:"bench_id"`
	Start   time.Time      `json:"start"`
	End     time.Time      `json:"end"`
	Status  IntervalStatus `json:"status"`
}

var (
	// ErrInvalidInterval indicates a contract violation by the caller
	// (end before start, unknown status). It is distinct from the
	// validation reason codes, which are results rather than errors.
	ErrInvalidInterval = errors.New("invalid interval")
)

// NewInterval builds a validated interval.
func NewInterval(benchID uuid.UUID, start, end time.Time, status IntervalStatus) (Interval, error) {
	if end.Before(start) {
		return Interval{}, fmt.Errorf("%w: end %s precedes start %s", ErrInvalidInterval, end, start)
	}
	if !status.IsValid() {
		return Interval{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInterval, status)
	}
	return Interval{BenchID: benchID, Start: start, End: end, Status: status}, nil
}

// IntervalRecord is the wire shape the reservation request store produces.
type IntervalRecord struct {
	BenchID string `json:"bench_id"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Status  string `json:"status"`
}

// ParseInterval converts a store record into an Interval. Malformed records
// fail fast with ErrInvalidInterval wrapping: they indicate a bug in the
// caller, not a user-correctable condition.
func ParseInterval(rec IntervalRecord) (Interval, error) {
	benchID, err := uuid.Parse(rec.BenchID)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: bench id %q: %v", ErrInvalidInterval, rec.BenchID, err)
	}
	start, err := time.Parse(time.RFC3339, rec.Start)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: start %q: %v", ErrInvalidInterval, rec.Start, err)
	}
	end, err := time.Parse(time.RFC3339, rec.End)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: end %q: %v", ErrInvalidInterval, rec.End, err)
	}
	return NewInterval(benchID, start, end, IntervalStatus(rec.Status))
}

// Overlaps reports whether two closed intervals intersect. Boundaries are
// inclusive on both ends: an interval ending at 12:00 conflicts with one
// starting at 12:00. This is the single primitive every higher-level check
// composes from; keep the convention consistent everywhere.
func Overlaps(a, b Interval) bool {
	return !a.Start.After(b.End) && !b.Start.After(a.End)
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable second of t's calendar day,
// matching the store's full-day convention of 23:59:59.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// dayInterval is the closed interval covering one calendar day, used to
// intersect stored intervals with a day of the calendar.
func dayInterval(day time.Time) Interval {
	return Interval{Start: StartOfDay(day), End: EndOfDay(day)}
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

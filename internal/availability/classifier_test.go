package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func TestClassifyDay(t *testing.T) {
	hours := DefaultOperatingHours

	testCases := []struct {
		name     string
		day      time.Time
		approved []Interval
		pending  []Interval
		expected DayClass
	}{
		{
			name:     "no intervals at all",
			day:      day(t, "2025-01-28"),
			expected: DayFree,
		},
		{
			name: "single approved full-day interval",
			day:  day(t, "2025-01-28"),
			approved: []Interval{
				iv(t, "2025-01-28T00:00:00Z", "2025-01-28T23:59:59Z", StatusApproved),
			},
			expected: DayFullyBooked,
		},
		{
			name: "approved morning slot only",
			day:  day(t, "2025-01-30"),
			approved: []Interval{
				iv(t, "2025-01-30T08:00:00Z", "2025-01-30T12:00:00Z", StatusApproved),
			},
			expected: DayPartiallyBooked,
		},
		{
			name: "two approved slots covering all operating hours",
			day:  day(t, "2025-01-30"),
			approved: []Interval{
				iv(t, "2025-01-30T08:00:00Z", "2025-01-30T13:00:00Z", StatusApproved),
				iv(t, "2025-01-30T13:00:00Z", "2025-01-30T19:00:00Z", StatusApproved),
			},
			expected: DayFullyBooked,
		},
		{
			name: "pending interval only",
			day:  day(t, "2025-03-11"),
			pending: []Interval{
				iv(t, "2025-03-11T08:00:00Z", "2025-03-11T12:00:00Z", StatusPending),
			},
			expected: DayPending,
		},
		{
			name: "approved coverage dominates pending overlap",
			day:  day(t, "2025-03-11"),
			approved: []Interval{
				iv(t, "2025-03-11T08:00:00Z", "2025-03-11T10:00:00Z", StatusApproved),
			},
			pending: []Interval{
				iv(t, "2025-03-11T14:00:00Z", "2025-03-11T16:00:00Z", StatusPending),
			},
			expected: DayPartiallyBooked,
		},
		{
			name: "middle day of a multi-day approved span",
			day:  day(t, "2025-02-11"),
			approved: []Interval{
				iv(t, "2025-02-10T08:00:00Z", "2025-02-12T19:00:00Z", StatusApproved),
			},
			expected: DayFullyBooked,
		},
		{
			name: "last day of a multi-day span ending mid-morning",
			day:  day(t, "2025-02-12"),
			approved: []Interval{
				iv(t, "2025-02-10T08:00:00Z", "2025-02-12T10:00:00Z", StatusApproved),
			},
			expected: DayPartiallyBooked,
		},
		{
			name: "interval outside operating hours still counts its clamp",
			day:  day(t, "2025-02-20"),
			approved: []Interval{
				iv(t, "2025-02-20T06:00:00Z", "2025-02-20T07:30:00Z", StatusApproved),
			},
			// 06-07 falls entirely before opening, so nothing is covered.
			expected: DayFree,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyDay(tc.day, tc.approved, tc.pending, hours))
		})
	}
}

// Adding more approved coverage never downgrades the class for a fixed day.
func TestClassificationMonotonicity(t *testing.T) {
	target := day(t, "2025-04-15")
	hours := DefaultOperatingHours

	rank := map[DayClass]int{DayFree: 0, DayPending: 0, DayPartiallyBooked: 1, DayFullyBooked: 2}

	slots := []Interval{
		iv(t, "2025-04-15T08:00:00Z", "2025-04-15T10:00:00Z", StatusApproved),
		iv(t, "2025-04-15T10:00:00Z", "2025-04-15T14:00:00Z", StatusApproved),
		iv(t, "2025-04-15T14:00:00Z", "2025-04-15T19:00:00Z", StatusApproved),
	}

	var approved []Interval
	prev := ClassifyDay(target, approved, nil, hours)
	for _, slot := range slots {
		approved = append(approved, slot)
		next := ClassifyDay(target, approved, nil, hours)
		assert.GreaterOrEqual(t, rank[next], rank[prev])
		prev = next
	}
	assert.Equal(t, DayFullyBooked, prev)
}

// A fully covered day goes back to FREE when its interval is removed.
func TestClassificationRoundTrip(t *testing.T) {
	target := day(t, "2025-01-28")
	full := []Interval{iv(t, "2025-01-28T00:00:00Z", "2025-01-28T23:59:59Z", StatusApproved)}

	assert.Equal(t, DayFullyBooked, ClassifyDay(target, full, nil, DefaultOperatingHours))
	assert.Equal(t, DayFree, ClassifyDay(target, nil, nil, DefaultOperatingHours))
}

func TestPendingOverlapsDay(t *testing.T) {
	pending := []Interval{iv(t, "2025-03-11T08:00:00Z", "2025-03-11T12:00:00Z", StatusPending)}

	assert.True(t, PendingOverlapsDay(day(t, "2025-03-11"), pending))
	assert.False(t, PendingOverlapsDay(day(t, "2025-03-12"), pending))
}

func TestOperatingHoursHourCount(t *testing.T) {
	assert.Equal(t, 12, DefaultOperatingHours.HourCount())
	assert.Equal(t, 0, OperatingHours{Open: 10, Close: 9}.HourCount())
}

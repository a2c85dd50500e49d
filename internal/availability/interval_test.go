package availability

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iv(t *testing.T, start, end string, status IntervalStatus) Interval {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)
	e, err := time.Parse(time.RFC3339, end)
	require.NoError(t, err)
	interval, err := NewInterval(uuid.New(), s, e, status)
	require.NoError(t, err)
	return interval
}

func TestOverlaps(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     Interval
		expected bool
	}{
		{
			name:     "fully disjoint",
			a:        iv(t, "2025-01-01T08:00:00Z", "2025-01-05T18:00:00Z", StatusApproved),
			b:        iv(t, "2025-01-06T08:00:00Z", "2025-01-09T18:00:00Z", StatusApproved),
			expected: false,
		},
		{
			name:     "touching endpoints count as overlap",
			a:        iv(t, "2025-01-01T08:00:00Z", "2025-01-05T12:00:00Z", StatusApproved),
			b:        iv(t, "2025-01-05T12:00:00Z", "2025-01-09T18:00:00Z", StatusApproved),
			expected: true,
		},
		{
			name:     "nested",
			a:        iv(t, "2025-01-01T00:00:00Z", "2025-01-31T23:59:59Z", StatusApproved),
			b:        iv(t, "2025-01-10T08:00:00Z", "2025-01-12T18:00:00Z", StatusApproved),
			expected: true,
		},
		{
			name:     "partial overlap",
			a:        iv(t, "2025-01-01T08:00:00Z", "2025-01-10T18:00:00Z", StatusApproved),
			b:        iv(t, "2025-01-05T08:00:00Z", "2025-01-15T18:00:00Z", StatusApproved),
			expected: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Overlaps(tc.a, tc.b))
			// Symmetry must hold for every pair.
			assert.Equal(t, Overlaps(tc.a, tc.b), Overlaps(tc.b, tc.a))
		})
	}
}

func TestNewIntervalRejectsReversedRange(t *testing.T) {
	start, _ := time.Parse(time.RFC3339, "2025-03-01T10:00:00Z")
	end, _ := time.Parse(time.RFC3339, "2025-02-28T10:00:00Z")

	_, err := NewInterval(uuid.New(), start, end, StatusApproved)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestParseInterval(t *testing.T) {
	benchID := uuid.New()

	testCases := []struct {
		name    string
		rec     IntervalRecord
		wantErr bool
	}{
		{
			name: "valid approved record",
			rec: IntervalRecord{
				BenchID: benchID.String(),
				Start:   "2025-01-28T08:00:00Z",
				End:     "2025-01-28T12:00:00Z",
				Status:  "APPROVED",
			},
		},
		{
			name: "unparsable start date",
			rec: IntervalRecord{
				BenchID: benchID.String(),
				Start:   "28/01/2025",
				End:     "2025-01-28T12:00:00Z",
				Status:  "APPROVED",
			},
			wantErr: true,
		},
		{
			name: "missing bench id",
			rec: IntervalRecord{
				Start:  "2025-01-28T08:00:00Z",
				End:    "2025-01-28T12:00:00Z",
				Status: "APPROVED",
			},
			wantErr: true,
		},
		{
			name: "rejected records are not part of the active set",
			rec: IntervalRecord{
				BenchID: benchID.String(),
				Start:   "2025-01-28T08:00:00Z",
				End:     "2025-01-28T12:00:00Z",
				Status:  "REJECTED",
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := ParseInterval(tc.rec)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInterval)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, benchID, parsed.BenchID)
			assert.Equal(t, StatusApproved, parsed.Status)
		})
	}
}

func TestDayBounds(t *testing.T) {
	at, _ := time.Parse(time.RFC3339, "2025-01-28T14:37:21Z")

	assert.Equal(t, "2025-01-28T00:00:00Z", StartOfDay(at).Format(time.RFC3339))
	assert.Equal(t, "2025-01-28T23:59:59Z", EndOfDay(at).Format(time.RFC3339))
	assert.True(t, SameDay(at, StartOfDay(at)))
	assert.False(t, SameDay(at, at.AddDate(0, 0, 1)))
}

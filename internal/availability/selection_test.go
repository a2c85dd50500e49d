package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pickDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSelectionPick(t *testing.T) {
	t.Run("first pick sets the start", func(t *testing.T) {
		sel := Selection{}.Pick(pickDay(2025, time.March, 10))
		require.NotNil(t, sel.Start)
		assert.Nil(t, sel.End)
		assert.False(t, sel.Complete())
	})

	t.Run("second later pick completes the range", func(t *testing.T) {
		sel := Selection{}.
			Pick(pickDay(2025, time.March, 10)).
			Pick(pickDay(2025, time.March, 12))
		require.True(t, sel.Complete())

		start, end := sel.Range()
		assert.Equal(t, pickDay(2025, time.March, 10), start)
		assert.Equal(t, pickDay(2025, time.March, 12), end)
	})

	t.Run("picking the same day twice yields a single-day range", func(t *testing.T) {
		sel := Selection{}.
			Pick(pickDay(2025, time.March, 10)).
			Pick(pickDay(2025, time.March, 10))
		require.True(t, sel.Complete())

		start, end := sel.Range()
		assert.Equal(t, start, end)
	})

	t.Run("picking an earlier day restarts the selection", func(t *testing.T) {
		sel := Selection{}.
			Pick(pickDay(2025, time.March, 10)).
			Pick(pickDay(2025, time.March, 5))
		assert.False(t, sel.Complete())
		require.NotNil(t, sel.Start)
		assert.Equal(t, pickDay(2025, time.March, 5), *sel.Start)
	})

	t.Run("picking after a complete range starts fresh", func(t *testing.T) {
		sel := Selection{}.
			Pick(pickDay(2025, time.March, 10)).
			Pick(pickDay(2025, time.March, 12)).
			Pick(pickDay(2025, time.March, 20))
		assert.False(t, sel.Complete())
		require.NotNil(t, sel.Start)
		assert.Equal(t, pickDay(2025, time.March, 20), *sel.Start)
	})

	t.Run("pick normalizes to midnight", func(t *testing.T) {
		sel := Selection{}.Pick(time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC))
		require.NotNil(t, sel.Start)
		assert.Equal(t, pickDay(2025, time.March, 10), *sel.Start)
	})
}

package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewWindow(t *testing.T) {
	w, err := NewWindow(date(2025, 1, 1), date(2025, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, 31, w.Days())
	assert.Equal(t, date(2025, 1, 15), w.Day(14))
}

func TestNewWindow_SameDayIsOneDay(t *testing.T) {
	w, err := NewWindow(date(2025, 3, 10), date(2025, 3, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, w.Days())
}

func TestNewWindow_RejectsInvertedRange(t *testing.T) {
	_, err := NewWindow(date(2025, 2, 1), date(2025, 1, 31))
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestNewWindow_DropsTimeOfDay(t *testing.T) {
	start := time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2025, 1, 2, 0, 1, 0, 0, time.UTC)
	w, err := NewWindow(start, end)
	require.NoError(t, err)
	assert.Equal(t, 2, w.Days())
}

func TestDistribute_FrontLoadedAndEven(t *testing.T) {
	// 750 spots over 30 days: half 375 = 12*30 + 15, so the first 15 days get
	// 13*2=26 and the rest 12*2=24.
	got := Distribute(750, 30)
	require.Len(t, got, 30)

	sum := 0
	for i, n := range got {
		sum += n
		assert.Zero(t, n%2, "day %d has odd count %d", i+1, n)
	}
	assert.Equal(t, 750, sum)
	assert.Equal(t, 26, got[0])
	assert.Equal(t, 26, got[14])
	assert.Equal(t, 24, got[15])
	assert.Equal(t, 24, got[29])
}

func TestDistribute_OddTotalShortfallOnDayOne(t *testing.T) {
	got := Distribute(751, 30)
	require.Len(t, got, 30)

	sum := 0
	for _, n := range got {
		sum += n
	}
	assert.Equal(t, 751, sum)
	assert.Equal(t, 27, got[0])
	for _, n := range got[1:] {
		assert.Zero(t, n%2)
	}
}

func TestDistribute_ZeroDays(t *testing.T) {
	assert.Empty(t, Distribute(750, 0))
	assert.Empty(t, Distribute(750, -1))
}

func TestDistribute_FewerSpotsThanDays(t *testing.T) {
	// half(3)=1, so one day carries 2 and day one also takes the odd spot.
	got := Distribute(3, 15)
	require.Len(t, got, 15)

	sum := 0
	for _, n := range got {
		sum += n
		assert.GreaterOrEqual(t, n, 0)
	}
	assert.Equal(t, 3, sum)
	assert.Equal(t, 3, got[0])
}

func TestDistribute_ZeroSpots(t *testing.T) {
	got := Distribute(0, 5)
	require.Len(t, got, 5)
	for _, n := range got {
		assert.Zero(t, n)
	}
}

func TestDistribute_SumInvariantSweep(t *testing.T) {
	for total := 0; total <= 200; total += 7 {
		for days := 1; days <= 31; days += 3 {
			got := Distribute(total, days)
			sum := 0
			for _, n := range got {
				require.GreaterOrEqual(t, n, 0)
				sum += n
			}
			require.Equal(t, total, sum, "total=%d days=%d", total, days)
		}
	}
}

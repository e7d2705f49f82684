// Package schedule spreads a purchased spot count across the campaign days.
//
// The smoothing pass works on half the count: the half is floor-divided across
// the days with the remainder front-loaded, every day is then doubled so daily
// values come out even, and any truncation shortfall from halving an odd total
// lands on day one. The distributed days always sum to the exact spot count.
package schedule

import (
	"errors"
	"time"
)

// ErrInvalidWindow is returned when the campaign end date precedes the start.
var ErrInvalidWindow = errors.New("campaign end date is before start date")

// Window is an inclusive campaign date range. Construct it with NewWindow so an
// inverted range can never produce a schedule.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a window from inclusive start and end dates. Times of day
// are dropped; a same-day window is valid and spans one day.
func NewWindow(start, end time.Time) (Window, error) {
	s := midnight(start)
	e := midnight(end)
	if e.Before(s) {
		return Window{}, ErrInvalidWindow
	}
	return Window{Start: s, End: e}, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Days returns the inclusive day count of the window.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start)/(24*time.Hour)) + 1
}

// Day returns the date of the zero-based day index within the window.
func (w Window) Day(i int) time.Time {
	return w.Start.AddDate(0, 0, i)
}

// Distribute spreads total spots across days. Guarantees: the values sum to
// total exactly, no value is negative, and at most day one absorbs a rounding
// remainder beyond the front-loaded smoothing. Zero days yields an empty
// schedule.
func Distribute(total, days int) []int {
	if days <= 0 {
		return nil
	}
	if total < 0 {
		total = 0
	}

	half := total / 2
	base := half / days
	rem := half % days

	out := make([]int, days)
	for i := range out {
		n := base
		if i < rem {
			n++
		}
		out[i] = n * 2
	}

	// Halving an odd total truncates one spot; day one takes it.
	if short := total - half*2; short > 0 {
		out[0] += short
	}

	return out
}

package services

import (
	"fmt"
	"time"

	derrors "github.com/ersonp/tension-core/internal/domain/errors"
)

// timeNow is the clock used by every service. Tests replace it.
var timeNow = time.Now

// telescopeDefaultHorizon is the due date offset used when a telescoped step
// has no due date of its own.
const telescopeDefaultHorizon = 7 * 24 * time.Hour

// DistributeActionStepDates spreads n dates evenly between start and end,
// leaving one interval free before end: step i (1-indexed) falls on
// start + i*(end-start)/(n+1). For end after start the dates are strictly
// increasing and strictly inside (start, end).
func DistributeActionStepDates(start, end time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	interval := end.Sub(start) / time.Duration(n+1)
	dates := make([]time.Time, n)
	for i := 1; i <= n; i++ {
		dates[i-1] = start.Add(interval * time.Duration(i))
	}
	return dates
}

// checkStepSpacing rejects a horizon too short for n distributed dates to
// stay strictly ordered once stored at millisecond precision.
func checkStepSpacing(start, end time.Time, n int) error {
	if n <= 0 {
		return nil
	}
	if end.Sub(start)/time.Duration(n+1) < time.Millisecond {
		return derrors.NewValidation("dueDate", fmt.Sprintf("is too close to distribute %d action steps", n))
	}
	return nil
}

// midpoint returns the instant halfway between a and b.
func midpoint(a, b time.Time) time.Time {
	return a.Add(b.Sub(a) / 2)
}

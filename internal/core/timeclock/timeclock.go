// Package timeclock derives worked time and labor cost from a sparse,
// append-only status event stream. All functions are pure; callers pass the
// event history and a reference "now" instead of reading any shared state.
package timeclock

import (
	"fmt"
	"sort"
	"time"

	"fieldops.service/internal/core/model"
)

// ComputeWorkedTime reduces the event history of one (employee, work order)
// pair to the total accumulated working duration. Codes 1 and 4 open an
// interval, codes 2, 3, 5, 6 and 7 close it. An interval still open at the end
// of the history counts up to referenceNow, and stillOpen reports that case.
//
// Two rules are deliberate and must not be "fixed":
//   - a second open marker before any close silently replaces the earlier
//     open point (last-open-wins); the gap between the two opens is dropped.
//     The write-time snapshot and the dashboard both rely on this.
//   - negative deltas from out-of-order or skewed clocks are clamped to zero,
//     never subtracted from the total.
//
// The input is re-sorted ascending on every call; callers are never trusted
// to pre-sort. The sort is stable, so events with equal timestamps keep
// their incoming order.
func ComputeWorkedTime(events []model.StatusEvent, referenceNow time.Time) (accumulated time.Duration, stillOpen bool) {
	sorted := make([]model.StatusEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	var openAt *time.Time
	for i := range sorted {
		ev := &sorted[i]
		switch {
		case ev.StatusCode.OpensInterval():
			t := ev.CreatedAt
			openAt = &t
		case ev.StatusCode.ClosesInterval() && openAt != nil:
			if d := ev.CreatedAt.Sub(*openAt); d > 0 {
				accumulated += d
			}
			openAt = nil
		}
		// A close marker with no pending open is a no-op.
	}

	if openAt != nil {
		if d := referenceNow.Sub(*openAt); d > 0 {
			accumulated += d
		}
		return accumulated, true
	}
	return accumulated, false
}

// LaborCost converts an accumulated duration into money at the given hourly
// rate. Hours are fractional; nothing is rounded before the multiplication.
func LaborCost(accumulated time.Duration, hourlyRate float64) float64 {
	return accumulated.Hours() * hourlyRate
}

// FormatHHMM renders a duration as zero-padded "HH:MM". Both fields floor;
// seconds are discarded, never rounded up. Negative durations render as
// "00:00" since no caller may ever display a negative total.
func FormatHHMM(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalMinutes := int(d.Minutes())
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}

package timeclock

import (
	"testing"
	"time"

	"fieldops.service/internal/core/model"
)

var t0 = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func event(code model.StatusCode, at time.Time) model.StatusEvent {
	return model.StatusEvent{
		EmployeeID:  "42",
		WorkOrderID: "000123",
		StatusCode:  code,
		CreatedAt:   at,
	}
}

func TestComputeWorkedTimeEmptyHistory(t *testing.T) {
	d, open := ComputeWorkedTime(nil, t0)
	if d != 0 {
		t.Errorf("expected zero duration, got %v", d)
	}
	if open {
		t.Error("empty history must not be open")
	}
}

func TestComputeWorkedTimeSingleInterval(t *testing.T) {
	events := []model.StatusEvent{
		event(model.StatusStart, t0),
		event(model.StatusFinished, t0.Add(90*time.Minute)),
	}
	d, open := ComputeWorkedTime(events, t0.Add(3*time.Hour))
	if d != 90*time.Minute {
		t.Errorf("expected 90m, got %v", d)
	}
	if open {
		t.Error("finished history must not be open")
	}
}

func TestComputeWorkedTimeExcludesPausedGap(t *testing.T) {
	events := []model.StatusEvent{
		event(model.StatusStart, t0),
		event(model.StatusPause, t0.Add(30*time.Minute)),
		event(model.StatusResume, t0.Add(45*time.Minute)),
		event(model.StatusFinished, t0.Add(75*time.Minute)),
	}
	d, _ := ComputeWorkedTime(events, t0.Add(2*time.Hour))
	if d != 60*time.Minute {
		t.Errorf("expected 60m (30+30), got %v", d)
	}
}

func TestComputeWorkedTimeDoubleOpenOverwrites(t *testing.T) {
	// The second Start replaces the first open point; the 40 minutes between
	// the two opens must not be counted.
	events := []model.StatusEvent{
		event(model.StatusStart, t0),
		event(model.StatusStart, t0.Add(40*time.Minute)),
		event(model.StatusFinished, t0.Add(60*time.Minute)),
	}
	d, _ := ComputeWorkedTime(events, t0.Add(2*time.Hour))
	if d != 20*time.Minute {
		t.Errorf("expected 20m from the second open, got %v", d)
	}
}

func TestComputeWorkedTimeUnterminatedCountsToNow(t *testing.T) {
	events := []model.StatusEvent{event(model.StatusStart, t0)}
	d, open := ComputeWorkedTime(events, t0.Add(20*time.Minute))
	if d != 20*time.Minute {
		t.Errorf("expected 20m, got %v", d)
	}
	if !open {
		t.Error("unterminated interval must report stillOpen")
	}
}

func TestComputeWorkedTimeDanglingCloseIsNoOp(t *testing.T) {
	events := []model.StatusEvent{
		event(model.StatusPause, t0),
		event(model.StatusStart, t0.Add(10*time.Minute)),
		event(model.StatusBreak, t0.Add(25*time.Minute)),
		event(model.StatusPartsWait, t0.Add(30*time.Minute)),
	}
	d, open := ComputeWorkedTime(events, t0.Add(time.Hour))
	if d != 15*time.Minute {
		t.Errorf("expected 15m, got %v", d)
	}
	if open {
		t.Error("closed history must not be open")
	}
}

func TestComputeWorkedTimeClampsNegativeDelta(t *testing.T) {
	// Skewed clock: the close lands before the open. The delta is clamped to
	// zero, never subtracted.
	events := []model.StatusEvent{
		event(model.StatusStart, t0.Add(30*time.Minute)),
		event(model.StatusFinished, t0.Add(30*time.Minute)),
	}
	d, _ := ComputeWorkedTime(events, t0)
	if d != 0 {
		t.Errorf("expected 0, got %v", d)
	}

	// Unterminated open in the future of referenceNow: also clamped.
	d, open := ComputeWorkedTime([]model.StatusEvent{event(model.StatusStart, t0.Add(time.Hour))}, t0)
	if d != 0 {
		t.Errorf("expected 0 for future open, got %v", d)
	}
	if !open {
		t.Error("future open must still report stillOpen")
	}
}

func TestComputeWorkedTimeSortsInput(t *testing.T) {
	// Caller hands events newest-first; the accumulator must re-sort.
	events := []model.StatusEvent{
		event(model.StatusFinished, t0.Add(90*time.Minute)),
		event(model.StatusStart, t0),
	}
	d, _ := ComputeWorkedTime(events, t0.Add(3*time.Hour))
	if d != 90*time.Minute {
		t.Errorf("expected 90m, got %v", d)
	}
}

func TestLaborCost(t *testing.T) {
	cost := LaborCost(90*time.Minute, 20)
	if cost != 30.0 {
		t.Errorf("expected 30.00, got %v", cost)
	}
	if c := LaborCost(0, 55); c != 0 {
		t.Errorf("expected 0 cost for zero duration, got %v", c)
	}
}

func TestFormatHHMM(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{125 * time.Minute, "02:05"},
		{59 * time.Second, "00:00"}, // floors, never rounds up
		{10*time.Hour + 5*time.Minute + 59*time.Second, "10:05"},
		{-time.Hour, "00:00"}, // negatives never displayed
		{26 * time.Hour, "26:00"},
	}
	for _, c := range cases {
		if got := FormatHHMM(c.d); got != c.want {
			t.Errorf("FormatHHMM(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"fieldops.service/internal/core/model"
	"fieldops.service/internal/ports/messaging"
)

var clickTime = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func newTimesheetService(repo *fakeRepository, producer *fakeProducer) *TimesheetService {
	s := NewTimesheetService(repo, producer)
	s.now = func() time.Time { return clickTime }
	return s
}

func TestRecordStatusValidation(t *testing.T) {
	s := newTimesheetService(&fakeRepository{}, &fakeProducer{})

	cases := []RecordStatusInput{
		{EmployeeID: "", WorkOrderID: "123", StatusCode: model.StatusStart},
		{EmployeeID: "42", WorkOrderID: "", StatusCode: model.StatusStart},
		{EmployeeID: "42", WorkOrderID: "123", StatusCode: 0},
		{EmployeeID: "42", WorkOrderID: "123", StatusCode: 9},
	}
	for _, in := range cases {
		if _, err := s.RecordStatus(context.Background(), in); !errors.Is(err, ErrValidation) {
			t.Errorf("input %+v: expected validation error, got %v", in, err)
		}
	}
}

func TestRecordStatusRejectsWhitespaceOnlyIdentifiers(t *testing.T) {
	// Ids that canonicalize to nothing must fail validation, not slip through
	// as an empty-keyed event.
	repo := &fakeRepository{}
	s := newTimesheetService(repo, &fakeProducer{})

	cases := []RecordStatusInput{
		{EmployeeID: "   ", WorkOrderID: "123", StatusCode: model.StatusStart},
		{EmployeeID: "42", WorkOrderID: "   ", StatusCode: model.StatusStart},
	}
	for _, in := range cases {
		if _, err := s.RecordStatus(context.Background(), in); !errors.Is(err, ErrValidation) {
			t.Errorf("input %+v: expected validation error, got %v", in, err)
		}
	}
	if len(repo.events) != 0 {
		t.Errorf("no event may be written, got %d", len(repo.events))
	}
}

func TestRecordStatusNormalizesIdentifiers(t *testing.T) {
	repo := &fakeRepository{}
	s := newTimesheetService(repo, &fakeProducer{})

	ev, err := s.RecordStatus(context.Background(), RecordStatusInput{
		EmployeeID:  " 0042 ",
		WorkOrderID: "123",
		StatusCode:  model.StatusStart,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.EmployeeID != "42" {
		t.Errorf("expected canonical employee id 42, got %q", ev.EmployeeID)
	}
	if ev.WorkOrderID != "000123" {
		t.Errorf("expected padded work order 000123, got %q", ev.WorkOrderID)
	}
	if ev.WorkedTime != nil {
		t.Errorf("non-terminal event must carry no snapshot, got %v", *ev.WorkedTime)
	}
	if ev.Note != "web" {
		t.Errorf("expected default note, got %q", ev.Note)
	}
}

func TestRecordStatusTerminalRequiresConfirmation(t *testing.T) {
	repo := &fakeRepository{}
	s := newTimesheetService(repo, &fakeProducer{})

	for _, code := range []model.StatusCode{model.StatusFinished, model.StatusEndOfShift} {
		_, err := s.RecordStatus(context.Background(), RecordStatusInput{
			EmployeeID:  "42",
			WorkOrderID: "123",
			StatusCode:  code,
		})
		if !errors.Is(err, ErrConfirmationRequired) {
			t.Errorf("code %d: expected confirmation-required, got %v", code, err)
		}
	}
	if len(repo.events) != 0 {
		t.Errorf("no event may be written without confirmation, got %d", len(repo.events))
	}
}

func TestRecordStatusTerminalStampsSnapshot(t *testing.T) {
	repo := &fakeRepository{
		events: []model.StatusEvent{
			{EmployeeID: "42", WorkOrderID: "000123", StatusCode: model.StatusStart, CreatedAt: clickTime.Add(-90 * time.Minute)},
		},
		employees: []model.Employee{{EmployeeID: "42", Name: "Ana", HourlyRate: 20}},
	}
	producer := &fakeProducer{}
	s := newTimesheetService(repo, producer)

	ev, err := s.RecordStatus(context.Background(), RecordStatusInput{
		EmployeeID:  "42",
		WorkOrderID: "123",
		StatusCode:  model.StatusFinished,
		Confirmed:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.WorkedTime == nil || *ev.WorkedTime != "01:30" {
		t.Fatalf("expected snapshot 01:30, got %v", ev.WorkedTime)
	}

	if len(producer.laborEvents) != 1 || len(producer.emailEvents) != 1 {
		t.Fatalf("expected one labor and one email event, got %d/%d",
			len(producer.laborEvents), len(producer.emailEvents))
	}
	labor := producer.laborEvents[0].(messaging.LaborCostEvent)
	if labor.LaborCost != 30.0 {
		t.Errorf("expected cost 30.00 for 90m at rate 20, got %v", labor.LaborCost)
	}
	if labor.WorkedTime != "01:30" {
		t.Errorf("expected labor event snapshot 01:30, got %q", labor.WorkedTime)
	}
}

func TestRecordStatusSnapshotUsesExactKeysOnly(t *testing.T) {
	// History on another work order of the same employee must not leak into
	// the snapshot.
	repo := &fakeRepository{
		events: []model.StatusEvent{
			{EmployeeID: "42", WorkOrderID: "000999", StatusCode: model.StatusStart, CreatedAt: clickTime.Add(-5 * time.Hour)},
			{EmployeeID: "42", WorkOrderID: "000123", StatusCode: model.StatusStart, CreatedAt: clickTime.Add(-30 * time.Minute)},
		},
	}
	s := newTimesheetService(repo, &fakeProducer{})

	ev, err := s.RecordStatus(context.Background(), RecordStatusInput{
		EmployeeID:  "42",
		WorkOrderID: "123",
		StatusCode:  model.StatusEndOfShift,
		Confirmed:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.WorkedTime == nil || *ev.WorkedTime != "00:30" {
		t.Fatalf("expected 00:30 from the matching pair only, got %v", ev.WorkedTime)
	}
}

func TestRecordStatusSnapshotFailureStillInserts(t *testing.T) {
	repo := &fakeRepository{queryErr: errors.New("store down")}
	producer := &fakeProducer{}
	s := newTimesheetService(repo, producer)

	ev, err := s.RecordStatus(context.Background(), RecordStatusInput{
		EmployeeID:  "42",
		WorkOrderID: "123",
		StatusCode:  model.StatusFinished,
		Confirmed:   true,
	})
	if err != nil {
		t.Fatalf("snapshot failure must not block the write, got %v", err)
	}
	if ev.WorkedTime != nil {
		t.Errorf("expected absent snapshot after computation failure, got %v", *ev.WorkedTime)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected the event to be inserted, got %d", len(repo.events))
	}
	if len(producer.laborEvents) != 0 {
		t.Error("no labor event expected without a snapshot")
	}
}

func TestRecordStatusInsertFailurePropagates(t *testing.T) {
	repo := &fakeRepository{insertErr: errors.New("constraint violation")}
	s := newTimesheetService(repo, &fakeProducer{})

	_, err := s.RecordStatus(context.Background(), RecordStatusInput{
		EmployeeID:  "42",
		WorkOrderID: "123",
		StatusCode:  model.StatusStart,
	})
	if err == nil {
		t.Fatal("expected the store error to propagate")
	}
}

func TestEntryStateUnknownEmployee(t *testing.T) {
	s := newTimesheetService(&fakeRepository{}, &fakeProducer{})

	_, _, err := s.EntryState(context.Background(), "99")
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestEntryStateDerivesFromLatestEventOnly(t *testing.T) {
	repo := &fakeRepository{
		events: []model.StatusEvent{
			{EmployeeID: "42", WorkOrderID: "000123", StatusCode: model.StatusStart, CreatedAt: clickTime.Add(-2 * time.Hour)},
			{EmployeeID: "42", WorkOrderID: "000123", StatusCode: model.StatusPause, CreatedAt: clickTime.Add(-time.Hour)},
		},
		employees: []model.Employee{{EmployeeID: "42", Name: "Ana", Role: "Technician"}},
	}
	s := newTimesheetService(repo, &fakeProducer{})

	emp, state, err := s.EntryState(context.Background(), "042")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emp.Name != "Ana" {
		t.Errorf("expected employee resolved, got %+v", emp)
	}
	if state.Mode != model.ModeFree {
		t.Errorf("latest event is Pause, expected Free, got %s", state.Mode)
	}
	if state.WorkOrderID != "000123" {
		t.Errorf("expected resumption prefill, got %q", state.WorkOrderID)
	}
}

func TestRecentEntriesLimitAndFilter(t *testing.T) {
	repo := &fakeRepository{
		events: []model.StatusEvent{
			{EmployeeID: "42", WorkOrderID: "000123", StatusCode: model.StatusStart, CreatedAt: clickTime.Add(-6 * time.Minute)},
			{EmployeeID: "42", WorkOrderID: "000456", StatusCode: model.StatusStart, CreatedAt: clickTime.Add(-5 * time.Minute)},
			{EmployeeID: "42", WorkOrderID: "000123", StatusCode: model.StatusPause, CreatedAt: clickTime.Add(-4 * time.Minute)},
			{EmployeeID: "7", WorkOrderID: "000123", StatusCode: model.StatusStart, CreatedAt: clickTime.Add(-3 * time.Minute)},
		},
	}
	s := newTimesheetService(repo, &fakeProducer{})

	rows, err := s.RecentEntries(context.Background(), "42", "12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows for employee 42 and substring 12, got %d", len(rows))
	}
	if rows[0].StatusCode != model.StatusPause {
		t.Errorf("expected newest first, got %+v", rows[0])
	}
}

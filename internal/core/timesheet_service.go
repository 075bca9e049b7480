package core

import (
	"context"
	"fmt"
	"time"

	"fieldops.service/internal/core/model"
	"fieldops.service/internal/core/timeclock"
	"fieldops.service/internal/ports/messaging"
	"fieldops.service/internal/ports/repository"
	"github.com/rs/zerolog/log"
)

// recentEntriesLimit caps the recent-activity panel on the entry screen.
const recentEntriesLimit = 5

// TimesheetService drives the data-entry surface: status recording with
// write-time worked-time snapshots, entry-mode derivation and the
// recent-activity panel.
type TimesheetService struct {
	repo     repository.Repository
	producer messaging.EventProducer
	now      func() time.Time
}

// NewTimesheetService creates the main entry-side service, wiring up the
// event-log repository and the message queue producer.
func NewTimesheetService(repo repository.Repository, producer messaging.EventProducer) *TimesheetService {
	return &TimesheetService{
		repo:     repo,
		producer: producer,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RecordStatusInput is one punch from the entry screen.
type RecordStatusInput struct {
	EmployeeID  string
	WorkOrderID string
	StatusCode  model.StatusCode
	Note        string
	// Confirmed must be true for terminal codes (Finished, EndOfShift); the
	// entry screen sets it after the blocking confirm dialog.
	Confirmed bool
}

// RecordStatus validates and appends one status event. For terminal codes it
// first computes the worked-time snapshot over the pair's exact history and
// stamps it onto the event; a snapshot failure is logged and never blocks the
// insert. After a successful terminal insert the labor-cost and shift-summary
// events go out on their queues, best-effort.
func (s *TimesheetService) RecordStatus(ctx context.Context, in RecordStatusInput) (*model.StatusEvent, error) {
	employeeID := model.CanonicalEmployeeID(in.EmployeeID)
	workOrderID := model.NormalizeWorkOrderID(in.WorkOrderID)
	if employeeID == "" || workOrderID == "" {
		return nil, fmt.Errorf("%w: employee id and work order are required", ErrValidation)
	}
	if !in.StatusCode.Valid() {
		return nil, fmt.Errorf("%w: unknown status code %d", ErrValidation, in.StatusCode)
	}
	if in.StatusCode.Terminal() && !in.Confirmed {
		return nil, ErrConfirmationRequired
	}

	clickedAt := s.now()

	event := &model.StatusEvent{
		EmployeeID:  employeeID,
		WorkOrderID: workOrderID,
		StatusCode:  in.StatusCode,
		CreatedAt:   clickedAt,
		Note:        in.Note,
	}
	if event.Note == "" {
		event.Note = "web"
	}

	var worked time.Duration
	if in.StatusCode.Terminal() {
		d, snapshot, err := s.workedTimeSnapshot(ctx, employeeID, workOrderID, clickedAt)
		if err != nil {
			// The snapshot is advisory; the punch must still be recorded.
			log.Ctx(ctx).Error().Err(err).
				Str("employee_id", employeeID).
				Str("work_order_id", workOrderID).
				Msg("worked-time snapshot failed, inserting without duration")
		} else {
			worked = d
			event.WorkedTime = &snapshot
		}
	}

	if err := s.repo.InsertStatusEvent(ctx, event); err != nil {
		return nil, err
	}

	if in.StatusCode.Terminal() && event.WorkedTime != nil {
		s.publishTerminalEvents(ctx, event, worked)
	}
	return event, nil
}

// workedTimeSnapshot accumulates the pair's full history plus the interval
// still running at click time. The history query matches both keys exactly,
// not by substring.
func (s *TimesheetService) workedTimeSnapshot(ctx context.Context, employeeID, workOrderID string, now time.Time) (time.Duration, string, error) {
	history, err := s.repo.QueryStatusEvents(ctx, repository.EventFilter{
		EmployeeID:  employeeID,
		WorkOrderID: workOrderID,
	}, repository.OrderAsc)
	if err != nil {
		return 0, "", fmt.Errorf("loading pair history: %w", err)
	}

	accumulated, _ := timeclock.ComputeWorkedTime(history, now)
	return accumulated, timeclock.FormatHHMM(accumulated), nil
}

// publishTerminalEvents pushes the downstream notifications for a terminal
// punch. Both are side channels; failures are logged and do not undo the
// already-inserted event.
func (s *TimesheetService) publishTerminalEvents(ctx context.Context, event *model.StatusEvent, worked time.Duration) {
	rate := 0.0
	name := ""
	if emp, err := s.repo.GetEmployee(ctx, event.EmployeeID); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("employee_id", event.EmployeeID).Msg("rate lookup failed, publishing zero cost")
	} else if emp != nil {
		rate = emp.HourlyRate
		name = emp.Name
	}

	laborEvent := messaging.LaborCostEvent{
		EmployeeID:  event.EmployeeID,
		WorkOrderID: event.WorkOrderID,
		StatusCode:  int(event.StatusCode),
		WorkedTime:  *event.WorkedTime,
		LaborCost:   timeclock.LaborCost(worked, rate),
		OccurredAt:  event.CreatedAt,
	}
	if err := s.producer.PublishLaborCost(ctx, laborEvent); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to publish labor cost event")
	}

	summaryEvent := messaging.ShiftSummaryEvent{
		EmployeeID:   event.EmployeeID,
		EmployeeName: name,
		WorkOrderID:  event.WorkOrderID,
		StatusCode:   int(event.StatusCode),
		WorkedTime:   *event.WorkedTime,
		OccurredAt:   event.CreatedAt,
	}
	if err := s.producer.PublishShiftSummary(ctx, summaryEvent); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to publish shift summary event")
	}
}

// EntryState resolves the employee and derives the current entry mode from
// the single most recent event. A missing employee returns
// ErrEmployeeNotFound without touching the status log.
func (s *TimesheetService) EntryState(ctx context.Context, rawEmployeeID string) (*model.Employee, model.EntryState, error) {
	employeeID := model.CanonicalEmployeeID(rawEmployeeID)
	if employeeID == "" {
		return nil, model.EntryState{}, fmt.Errorf("%w: employee id is required", ErrValidation)
	}

	employee, err := s.repo.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, model.EntryState{}, err
	}
	if employee == nil {
		return nil, model.EntryState{}, ErrEmployeeNotFound
	}

	latest, err := s.repo.QueryStatusEvents(ctx, repository.EventFilter{
		EmployeeID: employeeID,
		Limit:      1,
	}, repository.OrderDesc)
	if err != nil {
		return nil, model.EntryState{}, err
	}

	if len(latest) == 0 {
		return employee, DeriveEntryState(nil), nil
	}
	return employee, DeriveEntryState(&latest[0]), nil
}

// RecentEntries returns the employee's latest punches for the activity panel,
// newest first, optionally narrowed by a case-insensitive work-order
// substring.
func (s *TimesheetService) RecentEntries(ctx context.Context, rawEmployeeID, workOrderFilter string) ([]model.EntryRow, error) {
	employeeID := model.CanonicalEmployeeID(rawEmployeeID)
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employee id is required", ErrValidation)
	}

	events, err := s.repo.QueryStatusEvents(ctx, repository.EventFilter{
		EmployeeID:        employeeID,
		WorkOrderContains: workOrderFilter,
		Limit:             recentEntriesLimit,
	}, repository.OrderDesc)
	if err != nil {
		return nil, err
	}

	rows := make([]model.EntryRow, 0, len(events))
	for _, ev := range events {
		rows = append(rows, model.EntryRow{
			Time:        ev.CreatedAt.In(model.DisplayLocation).Format("15:04"),
			WorkOrderID: ev.WorkOrderID,
			StatusCode:  ev.StatusCode,
			StatusLabel: ev.StatusCode.Label(),
		})
	}
	return rows, nil
}

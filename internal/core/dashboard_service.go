package core

import (
	"context"
	"fmt"
	"time"

	"fieldops.service/internal/core/model"
	"fieldops.service/internal/core/timeclock"
	"fieldops.service/internal/ports/repository"
)

// unknownEmployeeName labels rows whose employee id has no rate-table match.
const unknownEmployeeName = "Unknown"

// DashboardFilter is the dashboard query window. Start and End are calendar
// dates; the service widens them to [Start 00:00:00, End 23:59:59] UTC
// inclusive. EmployeeID matches exactly after canonicalization, WorkOrder by
// case-insensitive substring.
type DashboardFilter struct {
	Start      time.Time
	End        time.Time
	EmployeeID string
	WorkOrder  string
}

// DashboardService reduces the filtered event window into summary rows, KPI
// counts and per-work-order drill-down histories. It holds no state between
// invocations; every load fetches a fresh snapshot of both the rate table and
// the event window.
type DashboardService struct {
	repo repository.Repository
	now  func() time.Time
}

// NewDashboardService creates the dashboard-side read service.
func NewDashboardService(repo repository.Repository) *DashboardService {
	return &DashboardService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (f DashboardFilter) window() (time.Time, time.Time) {
	from := time.Date(f.Start.Year(), f.Start.Month(), f.Start.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(f.End.Year(), f.End.Month(), f.End.Day(), 23, 59, 59, 0, time.UTC)
	return from, to
}

func (f DashboardFilter) eventFilter() repository.EventFilter {
	from, to := f.window()
	return repository.EventFilter{
		EmployeeID:        model.CanonicalEmployeeID(f.EmployeeID),
		WorkOrderContains: f.WorkOrder,
		From:              &from,
		To:                &to,
	}
}

// Load fetches the rate table and the event window, deduplicates events to
// one representative row per (work order, employee) pair and derives worked
// time, cost and KPI counts. The query is newest-first, so first-seen per
// pair is the most recent event.
func (s *DashboardService) Load(ctx context.Context, filter DashboardFilter) (*model.DashboardSummary, error) {
	employees, err := s.employeeIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading employees: %w", err)
	}

	events, err := s.repo.QueryStatusEvents(ctx, filter.eventFilter(), repository.OrderDesc)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}

	representatives, histories := dedupePairs(events)
	referenceNow := s.now()

	rows := make([]model.SummaryRow, 0, len(representatives))
	for _, ev := range representatives {
		local := ev.CreatedAt.In(model.DisplayLocation)

		name := unknownEmployeeName
		rate := 0.0
		if emp, ok := employees[ev.EmployeeID]; ok {
			name = emp.Name
			rate = emp.HourlyRate
		}

		worked, _ := timeclock.ComputeWorkedTime(histories[pairKey(ev)], referenceNow)

		rows = append(rows, model.SummaryRow{
			Date:         local.Format("02/01/2006"),
			Time:         local.Format("15:04"),
			EmployeeID:   ev.EmployeeID,
			EmployeeName: name,
			WorkOrderID:  ev.WorkOrderID,
			StatusCode:   ev.StatusCode,
			StatusLabel:  ev.StatusCode.Label(),
			Bucket:       ev.StatusCode.Bucket(),
			WorkedTime:   timeclock.FormatHHMM(worked),
			LaborCost:    timeclock.LaborCost(worked, rate),
		})
	}

	return &model.DashboardSummary{
		Rows: rows,
		KPIs: rollupKPIs(representatives),
	}, nil
}

// History returns the raw event trail of one work order inside the filtered
// window, newest first, with employee names resolved. The dashboard's
// employee filter narrows the trail the same way it narrows the summary.
func (s *DashboardService) History(ctx context.Context, workOrderID string, filter DashboardFilter) ([]model.HistoryRow, error) {
	employees, err := s.employeeIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading employees: %w", err)
	}

	eventFilter := filter.eventFilter()
	eventFilter.WorkOrderID = workOrderID
	events, err := s.repo.QueryStatusEvents(ctx, eventFilter, repository.OrderDesc)
	if err != nil {
		return nil, fmt.Errorf("loading work order history: %w", err)
	}

	rows := make([]model.HistoryRow, 0, len(events))
	for _, ev := range events {
		name := ev.EmployeeID
		if emp, ok := employees[ev.EmployeeID]; ok {
			name = emp.Name
		}
		worked := ""
		if ev.WorkedTime != nil {
			worked = *ev.WorkedTime
		}
		rows = append(rows, model.HistoryRow{
			DateTime:     ev.CreatedAt.In(model.DisplayLocation).Format("02/01/2006 15:04:05"),
			EmployeeID:   ev.EmployeeID,
			EmployeeName: name,
			StatusCode:   ev.StatusCode,
			StatusLabel:  ev.StatusCode.Label(),
			WorkedTime:   worked,
			Note:         ev.Note,
		})
	}
	return rows, nil
}

func (s *DashboardService) employeeIndex(ctx context.Context) (map[string]model.Employee, error) {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]model.Employee, len(employees))
	for _, emp := range employees {
		index[emp.EmployeeID] = emp
	}
	return index, nil
}

func pairKey(ev model.StatusEvent) string {
	return ev.WorkOrderID + "|" + ev.EmployeeID
}

// dedupePairs keeps the first event seen per (work order, employee) pair as
// its summary representative and indexes the full event set per pair for the
// accumulator. Input order is preserved for the representatives.
func dedupePairs(events []model.StatusEvent) ([]model.StatusEvent, map[string][]model.StatusEvent) {
	var representatives []model.StatusEvent
	histories := make(map[string][]model.StatusEvent)

	for _, ev := range events {
		key := pairKey(ev)
		if _, seen := histories[key]; !seen {
			representatives = append(representatives, ev)
		}
		histories[key] = append(histories[key], ev)
	}
	return representatives, histories
}

// rollupKPIs classifies each distinct work order from its representatives'
// status codes. Precedence: one employee still working marks the whole order
// InProgress; otherwise one paused employee marks it Paused; otherwise it is
// Finished only when every contributing status is terminal. Anything else
// counts toward Total alone.
func rollupKPIs(representatives []model.StatusEvent) model.KPICounts {
	perOrder := make(map[string][]model.StatusCode)
	for _, ev := range representatives {
		perOrder[ev.WorkOrderID] = append(perOrder[ev.WorkOrderID], ev.StatusCode)
	}

	counts := model.KPICounts{Total: len(perOrder)}
	for _, codes := range perOrder {
		anyWorking := false
		anyPaused := false
		allFinished := true
		for _, code := range codes {
			switch code.Bucket() {
			case model.BucketInProgress:
				anyWorking = true
			case model.BucketPaused:
				anyPaused = true
			}
			if !code.Terminal() {
				allFinished = false
			}
		}

		switch {
		case anyWorking:
			counts.InProgress++
		case anyPaused:
			counts.Paused++
		case allFinished:
			counts.Finished++
		}
	}
	return counts
}

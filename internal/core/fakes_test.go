package core

import (
	"context"
	"sort"
	"strings"

	"fieldops.service/internal/core/model"
	"fieldops.service/internal/ports/repository"
)

// fakeRepository is an in-memory stand-in for the Postgres event store,
// honoring the same filter semantics.
type fakeRepository struct {
	events    []model.StatusEvent
	employees []model.Employee

	insertErr error
	queryErr  error
	nextID    int64
}

func (f *fakeRepository) InsertStatusEvent(_ context.Context, event *model.StatusEvent) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.nextID++
	event.ID = f.nextID
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeRepository) QueryStatusEvents(_ context.Context, filter repository.EventFilter, order repository.SortOrder) ([]model.StatusEvent, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	var out []model.StatusEvent
	for _, ev := range f.events {
		if filter.EmployeeID != "" && ev.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.WorkOrderID != "" && ev.WorkOrderID != filter.WorkOrderID {
			continue
		}
		if filter.WorkOrderContains != "" &&
			!strings.Contains(strings.ToLower(ev.WorkOrderID), strings.ToLower(filter.WorkOrderContains)) {
			continue
		}
		if filter.From != nil && ev.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && ev.CreatedAt.After(*filter.To) {
			continue
		}
		out = append(out, ev)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == repository.OrderDesc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeRepository) GetEmployee(_ context.Context, employeeID string) (*model.Employee, error) {
	for _, emp := range f.employees {
		if emp.EmployeeID == employeeID {
			e := emp
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) ListEmployees(_ context.Context) ([]model.Employee, error) {
	return f.employees, nil
}

// fakeProducer records published queue events.
type fakeProducer struct {
	laborEvents []interface{}
	emailEvents []interface{}
}

func (f *fakeProducer) PublishLaborCost(_ context.Context, body interface{}) error {
	f.laborEvents = append(f.laborEvents, body)
	return nil
}

func (f *fakeProducer) PublishShiftSummary(_ context.Context, body interface{}) error {
	f.emailEvents = append(f.emailEvents, body)
	return nil
}

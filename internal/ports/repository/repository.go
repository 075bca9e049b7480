package repository

import (
	"context"
	"time"

	"fieldops.service/internal/core/model"
)

// EventFilter narrows a status-log query. Zero-valued fields are ignored.
// EmployeeID and WorkOrderID match exactly; WorkOrderContains matches a
// case-insensitive substring. From/To bound CreatedAt inclusively on both
// ends.
type EventFilter struct {
	EmployeeID        string
	WorkOrderID       string
	WorkOrderContains string
	From              *time.Time
	To                *time.Time
	Limit             int
}

// SortOrder is the CreatedAt ordering of a status-log query.
type SortOrder string

const (
	OrderAsc  SortOrder = "ASC"
	OrderDesc SortOrder = "DESC"
)

// Repository contract: an append-only status event log plus the employee
// rate table. Events are only ever inserted and read, never updated.
type Repository interface {
	InsertStatusEvent(ctx context.Context, event *model.StatusEvent) error
	QueryStatusEvents(ctx context.Context, filter EventFilter, order SortOrder) ([]model.StatusEvent, error)
	GetEmployee(ctx context.Context, employeeID string) (*model.Employee, error)
	ListEmployees(ctx context.Context) ([]model.Employee, error)
}

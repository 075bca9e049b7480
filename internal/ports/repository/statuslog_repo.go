package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"fieldops.service/internal/core/model"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// StatusLogRepository is the concrete implementation for a PostgreSQL database.
type StatusLogRepository struct {
	DB *sql.DB
}

// NewStatusLogRepository create new instance
func NewStatusLogRepository(db *sql.DB) Repository {
	return &StatusLogRepository{DB: db}
}

// InsertStatusEvent appends one event to the status log. The log is
// append-only; there is deliberately no update or delete counterpart.
func (r *StatusLogRepository) InsertStatusEvent(ctx context.Context, event *model.StatusEvent) error {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String("app.employee_id", event.EmployeeID),
		attribute.String("app.work_order_id", event.WorkOrderID),
		attribute.Int("app.status_code", int(event.StatusCode)),
	)

	query := `INSERT INTO status_events (employee_id, work_order_id, status_code, created_at, worked_time, note)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var worked sql.NullString
	if event.WorkedTime != nil {
		worked = sql.NullString{String: *event.WorkedTime, Valid: true}
	}

	return r.DB.QueryRowContext(ctx, query,
		event.EmployeeID,
		event.WorkOrderID,
		int(event.StatusCode),
		event.CreatedAt,
		worked,
		event.Note,
	).Scan(&event.ID)
}

// QueryStatusEvents reads events matching the filter in the requested
// CreatedAt order. Ties on created_at fall back to insertion id so the
// ordering is deterministic.
func (r *StatusLogRepository) QueryStatusEvents(ctx context.Context, filter EventFilter, order SortOrder) ([]model.StatusEvent, error) {
	span := trace.SpanFromContext(ctx)
	if filter.EmployeeID != "" {
		span.SetAttributes(attribute.String("app.employee_id", filter.EmployeeID))
	}
	if filter.WorkOrderID != "" {
		span.SetAttributes(attribute.String("app.work_order_id", filter.WorkOrderID))
	}

	var (
		conditions []string
		args       []any
	)
	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.EmployeeID != "" {
		addCondition("employee_id = $%d", filter.EmployeeID)
	}
	if filter.WorkOrderID != "" {
		addCondition("work_order_id = $%d", filter.WorkOrderID)
	}
	if filter.WorkOrderContains != "" {
		addCondition("work_order_id ILIKE $%d", "%"+filter.WorkOrderContains+"%")
	}
	if filter.From != nil {
		addCondition("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		addCondition("created_at <= $%d", *filter.To)
	}

	query := `SELECT id, employee_id, work_order_id, status_code, created_at, worked_time, note
              FROM status_events`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	if order == OrderDesc {
		query += " ORDER BY created_at DESC, id DESC"
	} else {
		query += " ORDER BY created_at ASC, id ASC"
	}
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.StatusEvent
	for rows.Next() {
		var (
			ev     model.StatusEvent
			code   int
			worked sql.NullString
			note   sql.NullString
		)
		if err := rows.Scan(&ev.ID, &ev.EmployeeID, &ev.WorkOrderID, &code, &ev.CreatedAt, &worked, &note); err != nil {
			return nil, err
		}
		ev.StatusCode = model.StatusCode(code)
		if worked.Valid {
			ev.WorkedTime = &worked.String
		}
		ev.Note = note.String
		events = append(events, ev)
	}
	return events, rows.Err()
}

// GetEmployee fetches one employee by its canonical id. A missing employee
// returns (nil, nil); the caller decides whether that is an error.
func (r *StatusLogRepository) GetEmployee(ctx context.Context, employeeID string) (*model.Employee, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employee_id", employeeID))

	query := `SELECT employee_id, name, role, COALESCE(hourly_rate, 0)
              FROM employees
              WHERE employee_id = $1`

	emp := &model.Employee{}
	err := r.DB.QueryRowContext(ctx, query, employeeID).Scan(&emp.EmployeeID, &emp.Name, &emp.Role, &emp.HourlyRate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return emp, nil
}

// ListEmployees returns the full rate table for dashboard-side lookups.
func (r *StatusLogRepository) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	query := `SELECT employee_id, name, role, COALESCE(hourly_rate, 0) FROM employees`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		var emp model.Employee
		if err := rows.Scan(&emp.EmployeeID, &emp.Name, &emp.Role, &emp.HourlyRate); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

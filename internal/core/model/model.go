package model

import (
	"time"
)

// StatusCode identifies the kind of transition a technician punches
// against a work order.
type StatusCode int

const (
	StatusStart      StatusCode = 1 // opens a working interval
	StatusPartsWait  StatusCode = 2 // closes a working interval
	StatusBreak      StatusCode = 3 // closes a working interval
	StatusResume     StatusCode = 4 // opens a working interval
	StatusFinished   StatusCode = 5 // closes; terminal for the work order
	StatusPause      StatusCode = 6 // closes a working interval
	StatusEndOfShift StatusCode = 7 // closes; terminal for the day
)

// Valid reports whether the code is one of the seven known statuses.
func (c StatusCode) Valid() bool {
	return c >= StatusStart && c <= StatusEndOfShift
}

// OpensInterval reports whether the code marks the start of a working interval.
func (c StatusCode) OpensInterval() bool {
	return c == StatusStart || c == StatusResume
}

// ClosesInterval reports whether the code marks the end of a working interval.
func (c StatusCode) ClosesInterval() bool {
	switch c {
	case StatusPartsWait, StatusBreak, StatusFinished, StatusPause, StatusEndOfShift:
		return true
	}
	return false
}

// Terminal reports whether the code ends the employee's involvement with the
// work order (Finished) or the working day (EndOfShift). Terminal events carry
// a worked-time snapshot and require explicit confirmation before being written.
func (c StatusCode) Terminal() bool {
	return c == StatusFinished || c == StatusEndOfShift
}

// Label returns the human-readable status name used on badges and exports.
func (c StatusCode) Label() string {
	switch c {
	case StatusStart:
		return "Start"
	case StatusPartsWait:
		return "Parts"
	case StatusBreak:
		return "Break"
	case StatusResume:
		return "Resume"
	case StatusFinished:
		return "Finished"
	case StatusPause:
		return "Pause"
	case StatusEndOfShift:
		return "End of Shift"
	}
	return "Unknown"
}

// WorkOrderBucket is the mutually-exclusive-by-precedence classification of a
// work order's aggregate state on the dashboard.
type WorkOrderBucket string

const (
	BucketInProgress    WorkOrderBucket = "IN_PROGRESS"
	BucketPaused        WorkOrderBucket = "PAUSED"
	BucketFinished      WorkOrderBucket = "FINISHED"
	BucketUncategorized WorkOrderBucket = ""
)

// Bucket maps a single status code to the dashboard bucket it argues for.
func (c StatusCode) Bucket() WorkOrderBucket {
	switch c {
	case StatusStart, StatusResume:
		return BucketInProgress
	case StatusPartsWait, StatusBreak, StatusPause:
		return BucketPaused
	case StatusFinished, StatusEndOfShift:
		return BucketFinished
	}
	return BucketUncategorized
}

// StatusEvent is one row of the append-only status log. Events are created
// once, never updated and never deleted.
type StatusEvent struct {
	ID          int64      `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	WorkOrderID string     `json:"workOrderId"`
	StatusCode  StatusCode `json:"statusCode"`
	CreatedAt   time.Time  `json:"createdAt"`
	// WorkedTime holds the "HH:MM" snapshot of accumulated working time,
	// stamped only when a terminal event (Finished, EndOfShift) is written.
	WorkedTime *string `json:"workedTime,omitempty"`
	Note       string  `json:"note,omitempty"`
}

// Employee is one row of the rate table. HourlyRate defaults to zero when the
// stored value is missing; cost is always recomputed from the current rate,
// not snapshotted per event.
type Employee struct {
	EmployeeID string  `json:"employeeId"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	HourlyRate float64 `json:"hourlyRate"`
}

// EntryMode is the state of the data-entry surface for one employee.
type EntryMode string

const (
	ModeFree    EntryMode = "FREE"
	ModeWorking EntryMode = "WORKING"
	ModePaused  EntryMode = "PAUSED"
)

// Advisory is the notice shown on the entry surface alongside the derived mode.
type Advisory struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// EntryState tells the entry screen which mode to render, what work order to
// prefill, and which status actions remain valid.
type EntryState struct {
	Mode           EntryMode    `json:"mode"`
	WorkOrderID    string       `json:"workOrderId"`
	FieldsLocked   bool         `json:"fieldsLocked"`
	Advisory       *Advisory    `json:"advisory,omitempty"`
	AllowedActions []StatusCode `json:"allowedActions"`
}

// EntryRow is one line of the recent-activity panel on the entry screen.
type EntryRow struct {
	Time        string     `json:"time"` // HH:MM in display timezone
	WorkOrderID string     `json:"workOrderId"`
	StatusCode  StatusCode `json:"statusCode"`
	StatusLabel string     `json:"statusLabel"`
}

// SummaryRow is one line of the dashboard table: the most recent event for a
// (work order, employee) pair, decorated with derived worked time and cost.
type SummaryRow struct {
	Date         string          `json:"date"` // display timezone
	Time         string          `json:"time"`
	EmployeeID   string          `json:"employeeId"`
	EmployeeName string          `json:"employeeName"`
	WorkOrderID  string          `json:"workOrderId"`
	StatusCode   StatusCode      `json:"statusCode"`
	StatusLabel  string          `json:"statusLabel"`
	Bucket       WorkOrderBucket `json:"bucket"`
	WorkedTime   string          `json:"workedTime"` // HH:MM
	LaborCost    float64         `json:"laborCost"`
}

// KPICounts are the four dashboard counters. A work order lands in exactly one
// of the three named buckets (precedence InProgress > Paused > Finished) or in
// none of them, in which case it still counts toward Total.
type KPICounts struct {
	Total      int `json:"total"`
	InProgress int `json:"inProgress"`
	Paused     int `json:"paused"`
	Finished   int `json:"finished"`
}

// DashboardSummary is the full payload for one dashboard load. KPI selection
// filters rows client-side; the fetched set is never mutated.
type DashboardSummary struct {
	Rows []SummaryRow `json:"rows"`
	KPIs KPICounts    `json:"kpis"`
}

// HistoryRow is one raw event in the per-work-order drill-down view.
type HistoryRow struct {
	DateTime     string     `json:"dateTime"` // display timezone
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName"`
	StatusCode   StatusCode `json:"statusCode"`
	StatusLabel  string     `json:"statusLabel"`
	WorkedTime   string     `json:"workedTime,omitempty"`
	Note         string     `json:"note,omitempty"`
}

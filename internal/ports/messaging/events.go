package messaging

import "time"

// LaborCostEvent is the JSON payload sent to the labor queue when a terminal
// status (Finished, EndOfShift) lands in the log. The payroll worker forwards
// it to the legacy payroll system.
type LaborCostEvent struct {
	EmployeeID  string    `json:"employeeId"`
	WorkOrderID string    `json:"workOrderId"`
	StatusCode  int       `json:"statusCode"`
	WorkedTime  string    `json:"workedTime"` // HH:MM snapshot
	LaborCost   float64   `json:"laborCost"`  // at the rate current at write time
	OccurredAt  time.Time `json:"occurredAt"`
}

// ShiftSummaryEvent is the JSON payload sent to the email queue; the email
// worker turns it into a supervisor summary mail.
type ShiftSummaryEvent struct {
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	WorkOrderID  string    `json:"workOrderId"`
	StatusCode   int       `json:"statusCode"`
	WorkedTime   string    `json:"workedTime"`
	OccurredAt   time.Time `json:"occurredAt"`
}

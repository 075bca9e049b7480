package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// A simple struct to capture the incoming labor cost record
type LaborCostEvent struct {
	EmployeeID  string    `json:"employeeId"`
	WorkOrderID string    `json:"workOrderId"`
	StatusCode  int       `json:"statusCode"`
	WorkedTime  string    `json:"workedTime"`
	LaborCost   float64   `json:"laborCost"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func laborCostHandler(w http.ResponseWriter, r *http.Request) {
	var event LaborCostEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	log.Printf("Received labor cost for EmployeeID: %s, WorkOrder: %s, Time: %s, Cost: %.2f",
		event.EmployeeID, event.WorkOrderID, event.WorkedTime, event.LaborCost)
	w.WriteHeader(http.StatusOK)
}

func main() {
	http.HandleFunc("/", laborCostHandler)
	log.Println("Payroll API mock server starting on port 8081...")
	log.Fatal(http.ListenAndServe(":8081", nil))
}

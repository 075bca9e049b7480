package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"fieldops.service/internal/core"
	"fieldops.service/internal/core/model"
	"github.com/gorilla/mux"
)

// EntryHandler serves the technician data-entry surface: status punches,
// mode derivation and the recent-activity panel.
type EntryHandler struct {
	Service *core.TimesheetService
}

// RecordStatusRequest is the JSON body of a status punch.
type RecordStatusRequest struct {
	EmployeeID  string `json:"employeeId"`
	WorkOrderID string `json:"workOrderId"`
	StatusCode  int    `json:"statusCode"`
	Note        string `json:"note"`
	// Confirmed acknowledges the blocking confirm step for terminal codes.
	Confirmed bool `json:"confirmed"`
}

// RecordStatus handles POST /status. Terminal codes without the confirmed
// flag answer 409 so the client can show its confirm dialog and resubmit.
func (h *EntryHandler) RecordStatus(w http.ResponseWriter, r *http.Request) {
	var req RecordStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	event, err := h.Service.RecordStatus(r.Context(), core.RecordStatusInput{
		EmployeeID:  req.EmployeeID,
		WorkOrderID: req.WorkOrderID,
		StatusCode:  model.StatusCode(req.StatusCode),
		Note:        req.Note,
		Confirmed:   req.Confirmed,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(event)
}

// EntryStateResponse pairs the resolved employee with the derived entry mode.
type EntryStateResponse struct {
	Employee *model.Employee  `json:"employee"`
	State    model.EntryState `json:"state"`
}

// EntryState handles GET /entry/{employeeId}/state, evaluated by the client
// whenever the badge field loses focus.
func (h *EntryHandler) EntryState(w http.ResponseWriter, r *http.Request) {
	employeeID := mux.Vars(r)["employeeId"]

	employee, state, err := h.Service.EntryState(r.Context(), employeeID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(EntryStateResponse{Employee: employee, State: state})
}

// RecentEntries handles GET /entry/{employeeId}/recent with an optional
// workOrder substring filter.
func (h *EntryHandler) RecentEntries(w http.ResponseWriter, r *http.Request) {
	employeeID := mux.Vars(r)["employeeId"]
	workOrder := r.URL.Query().Get("workOrder")

	rows, err := h.Service.RecentEntries(r.Context(), employeeID, workOrder)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if rows == nil {
		rows = []model.EntryRow{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

// writeServiceError maps the core error taxonomy onto HTTP statuses. Store
// errors surface their message so the client can show it and offer a retry.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrEmployeeNotFound):
		http.Error(w, "Employee not found", http.StatusNotFound)
	case errors.Is(err, core.ErrConfirmationRequired):
		http.Error(w, "This action requires confirmation", http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

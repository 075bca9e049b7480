package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"fieldops.service/internal/api/handler"
	"fieldops.service/internal/core"
)

// NewRouter sets up the gorilla/mux router and defines all API routes.
func NewRouter(timesheet *core.TimesheetService, dashboard *core.DashboardService) *mux.Router {

	entryHandler := handler.EntryHandler{Service: timesheet}
	dashboardHandler := handler.DashboardHandler{Service: dashboard}

	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/status", entryHandler.RecordStatus).Methods(http.MethodPost)
	api.HandleFunc("/entry/{employeeId}/state", entryHandler.EntryState).Methods(http.MethodGet)
	api.HandleFunc("/entry/{employeeId}/recent", entryHandler.RecentEntries).Methods(http.MethodGet)

	api.HandleFunc("/dashboard", dashboardHandler.Summary).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/export", dashboardHandler.Export).Methods(http.MethodGet)
	api.HandleFunc("/workorders/{workOrderId}/history", dashboardHandler.History).Methods(http.MethodGet)

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Service is operational."))
	}).Methods(http.MethodGet)

	return r
}

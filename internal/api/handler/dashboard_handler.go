package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fieldops.service/internal/core"
	"fieldops.service/internal/export"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// DashboardHandler serves the summary table, the KPI counters, the
// per-work-order drill-down and the spreadsheet download.
type DashboardHandler struct {
	Service *core.DashboardService
}

// parseFilter reads the shared query parameters. Missing dates default to
// today, matching the dashboard's clear-filters behavior.
func parseFilter(r *http.Request) (core.DashboardFilter, error) {
	q := r.URL.Query()
	today := time.Now().UTC().Truncate(24 * time.Hour)

	parseDate := func(key string) (time.Time, error) {
		raw := q.Get(key)
		if raw == "" {
			return today, nil
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid %s date %q, want YYYY-MM-DD", key, raw)
		}
		return t, nil
	}

	start, err := parseDate("start")
	if err != nil {
		return core.DashboardFilter{}, err
	}
	end, err := parseDate("end")
	if err != nil {
		return core.DashboardFilter{}, err
	}

	return core.DashboardFilter{
		Start:      start,
		End:        end,
		EmployeeID: q.Get("employeeId"),
		WorkOrder:  q.Get("workOrder"),
	}, nil
}

// Summary handles GET /dashboard.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.Service.Load(r.Context(), filter)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("dashboard load failed")
		http.Error(w, "Failed to load dashboard data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// History handles GET /workorders/{workOrderId}/history.
func (h *DashboardHandler) History(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	workOrderID := mux.Vars(r)["workOrderId"]

	rows, err := h.Service.History(r.Context(), workOrderID, filter)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("work_order_id", workOrderID).Msg("history load failed")
		http.Error(w, "Failed to load work order history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

// Export handles GET /dashboard/export, streaming the summarized rows as an
// xlsx attachment named after the current date.
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.Service.Load(r.Context(), filter)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("export load failed")
		http.Error(w, "Failed to load dashboard data", http.StatusInternalServerError)
		return
	}
	if len(summary.Rows) == 0 {
		http.Error(w, "Nothing to export for the current filter", http.StatusNotFound)
		return
	}

	workbook, err := export.BuildWorkbook(summary.Rows)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("workbook build failed")
		http.Error(w, "Failed to build spreadsheet", http.StatusInternalServerError)
		return
	}
	defer workbook.Close()

	filename := export.Filename(time.Now().UTC())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := workbook.Write(w); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("spreadsheet write failed")
	}
}

package handlers

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/qnextlabs/fleet-console/internal/analytics"
	"github.com/qnextlabs/fleet-console/internal/source"
)

// DashboardHandler serves the analytics dashboard. Data comes through the
// source multiplexer, so these endpoints always succeed; degraded sourcing
// surfaces as a warning in the payload instead of an error status.
type DashboardHandler struct {
	mux *source.Multiplexer
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(mux *source.Multiplexer) *DashboardHandler {
	return &DashboardHandler{mux: mux}
}

// Analytics returns the aggregated dashboard metrics.
func (h *DashboardHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result := h.mux.Fetch(r.Context())
	summary := analytics.Build(result.Buses)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"summary": summary,
		"warning": result.Warning,
	})
}

// Report streams the dashboard as a PDF.
func (h *DashboardHandler) Report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result := h.mux.Fetch(r.Context())
	summary := analytics.Build(result.Buses)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="fleet-report.pdf"`)
	if err := analytics.WriteReport(w, summary, result.Warning); err != nil {
		log.WithError(err).Error("failed to write dashboard report")
	}
}

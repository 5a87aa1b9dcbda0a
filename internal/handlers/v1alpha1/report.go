package v1alpha1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/mozark/roi-planner/internal/service"
	"go.uber.org/zap"
)

// (GET /api/v1/scenarios/{id}/report)
// The format query parameter selects csv (default), xlsx or html.
func (h *ServiceHandler) GetScenarioReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = string(service.ReportFormatCSV)
	}

	report, err := h.reportSrv.GenerateReport(r.Context(), id, service.ReportOptions{Format: service.ReportFormat(format)})
	if err != nil {
		respondServiceError(w, r, err, "failed to generate report")
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(report.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(report.Content); err != nil {
		zap.S().Named("handler").Warnw("failed to write report", "error", err, "scenario_id", id)
	}
}
